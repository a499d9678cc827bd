// Package catalog holds the view models behind the home, explore, search and
// detail screens. Each model issues tagged requests, runs the fetch off the
// UI loop, and applies a result only while its tag still matches.
package catalog
