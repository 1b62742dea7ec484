package errno

import (
	"errors"
)

var (
	ErrConnection       = errors.New("tool transport connection failed")
	ErrToolNameRequired = errors.New("tool name is required")
	ErrUnknownTool      = errors.New("unknown tool")
	ErrNoToolsAvailable = errors.New("no tools available")
	ErrUnparseableReply = errors.New("could not interpret model reply")
	ErrNoSelection      = errors.New("model did not select a document")
	ErrNotACandidate    = errors.New("selected document is not among the candidates")
	ErrSessionClosed    = errors.New("session closed")
	ErrEmptyModelReply  = errors.New("model returned an empty reply")
)
