package server

import (
	"log/slog"
)

// Spec holds what a document server needs to run.
type Spec struct {
	Config *Config
	Log    *slog.Logger
}
