package catalog

import (
	"log/slog"

	"github.com/scenra/scenra/internal/domain"
)

// NoticeKind classifies a transient user notification
type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeAdded
	NoticeRemoved
	NoticeError
)

// Notice is a transient, dismissible message for the status line
type Notice struct {
	Kind NoticeKind
	Text string
}

// IsZero reports whether there is nothing to show
func (n Notice) IsZero() bool { return n.Kind == NoticeNone }

// IsError reports whether the notice describes a failure
func (n Notice) IsError() bool { return n.Kind == NoticeError }

// ToggleFavorite flips the pinned state of item in store
func ToggleFavorite(store domain.FavoritesStore, item domain.CatalogItem, logger *slog.Logger) Notice {
	if store == nil {
		return Notice{Kind: NoticeError, Text: "Tu lista no está disponible"}
	}

	added, err := store.Toggle(item)
	if err != nil {
		logger.Error("failed to update favorites", "item", item.Key().String(), "error", err)
		return Notice{Kind: NoticeError, Text: "No se pudo guardar tu lista"}
	}
	if added {
		return Notice{Kind: NoticeAdded, Text: item.Title + " añadida a tu lista"}
	}
	return Notice{Kind: NoticeRemoved, Text: item.Title + " eliminada de tu lista"}
}
