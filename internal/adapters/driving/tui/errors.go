package tui

import "errors"

// ErrMissingSearchController is returned when the search controller is not provided.
var ErrMissingSearchController = errors.New("tui: search controller is required")

// ErrMissingChatController is returned when the chat controller is not provided.
var ErrMissingChatController = errors.New("tui: chat controller is required")
