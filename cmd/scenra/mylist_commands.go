package main

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/scenra/scenra/internal/catalog"
	"github.com/scenra/scenra/internal/domain"
)

// fs backs export and import so tests can swap in an in-memory filesystem
var fs = afero.NewOsFs()

func newMyListCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mylist",
		Aliases: []string{"list"},
		Short:   "Manage your saved movies and series",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.printMyList(cmd)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List saved items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.printMyList(cmd)
		},
	})
	cmd.AddCommand(newMyListAddCommand(ctx))
	cmd.AddCommand(newMyListRemoveCommand(ctx))
	cmd.AddCommand(newMyListExportCommand(ctx))
	cmd.AddCommand(newMyListImportCommand(ctx))
	return cmd
}

func (c *commandContext) printMyList(cmd *cobra.Command) error {
	favs, err := c.openFavorites()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderItems(favs.Items(), nil))
	return nil
}

func newMyListAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add movie|tv ID",
		Short: "Fetch an item and save it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := parseKey(args[0], args[1])
			if err != nil {
				return err
			}
			favs, err := ctx.openFavorites()
			if err != nil {
				return err
			}
			if favs.Contains(kind, id) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d ya está en tu lista\n", kind, id)
				return nil
			}

			client, err := ctx.client()
			if err != nil {
				return err
			}
			view := catalog.NewDetail(client, ctx.logger).Load(cmd.Context(), kind, id)
			if view.Err != "" {
				return errors.New(view.Err)
			}

			notice := catalog.ToggleFavorite(favs, view.Record.CatalogItem, ctx.logger)
			if notice.IsError() {
				return errors.New(notice.Text)
			}
			fmt.Fprintln(cmd.OutOrStdout(), notice.Text)
			return nil
		},
	}
}

func newMyListRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove movie|tv ID",
		Aliases: []string{"rm"},
		Short:   "Remove a saved item",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := parseKey(args[0], args[1])
			if err != nil {
				return err
			}
			favs, err := ctx.openFavorites()
			if err != nil {
				return err
			}
			if !favs.Contains(kind, id) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d no está en tu lista\n", kind, id)
				return nil
			}
			if err := favs.Remove(kind, id); err != nil {
				return fmt.Errorf("failed to save my list: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d eliminada de tu lista\n", kind, id)
			return nil
		},
	}
}

func newMyListExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write saved items to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			favs, err := ctx.openFavorites()
			if err != nil {
				return err
			}
			n, err := favs.Export(fs, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d items to %s\n", n, args[0])
			return nil
		},
	}
}

func newMyListImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Merge items from a JSON file into your list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			favs, err := ctx.openFavorites()
			if err != nil {
				return err
			}
			n, err := favs.Import(fs, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items from %s\n", n, args[0])
			return nil
		},
	}
}

func parseKey(kindArg, idArg string) (domain.MediaKind, int64, error) {
	kind, ok := domain.ParseMediaKind(kindArg)
	if !ok {
		return "", 0, fmt.Errorf("unknown type %q (want movie or tv)", kindArg)
	}
	id, err := parseID(idArg)
	if err != nil {
		return "", 0, err
	}
	return kind, id, nil
}
