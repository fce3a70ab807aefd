package shell

import (
	"fmt"
	"io"
	"os"
)

// FileOpener abstracts the file system calls a redirection needs, so
// tests can swap in an in-memory opener instead of touching disk.
type FileOpener interface {
	OpenRead(name string) (io.ReadCloser, error)
	OpenWrite(name string, flag int, perm os.FileMode) (io.WriteCloser, error)
}

// DefaultFileOpener is the production FileOpener, backed by os.Open
// and os.OpenFile.
type DefaultFileOpener struct{}

func (fp *DefaultFileOpener) OpenRead(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

func (fp *DefaultFileOpener) OpenWrite(name string, flag int, perm os.FileMode) (io.WriteCloser, error) {
	return os.OpenFile(name, flag, perm)
}

// RedirectionHandler binds one redirection operator onto an IOBindings
// value. CanHandle lets a RedirectionManager route an operator to its
// handler without a switch statement; Validate runs ahead of any file
// being opened so a bad spec never leaves a half-applied redirection
// behind.
type RedirectionHandler interface {
	CanHandle(operator string) bool
	Validate(spec RedirectionSpec) error
	Apply(spec RedirectionSpec, ioBindings *IOBindings, opener FileOpener) (cleanup func(), err error)
}

// streamFileHandler is the one concrete RedirectionHandler this shell
// needs: every supported operator (>, >>, 1>, 1>>, 2>, 2>>) redirects
// either fd 1 or fd 2 to a file, truncating or appending. Rather than
// one type per fd/mode combination, a single handler is parameterized
// by which stream it binds and whether it truncates, and CanHandle
// recognizes both the bare and fd-prefixed spellings for fd 1.
type streamFileHandler struct {
	fd       int  // 1 for stdout, 2 for stderr
	truncate bool // true for >/1>/2>, false for >>/1>>/2>>
}

func (h *streamFileHandler) CanHandle(operator string) bool {
	suffix := ">"
	if !h.truncate {
		suffix = ">>"
	}
	if h.fd == 1 {
		return operator == suffix || operator == "1"+suffix
	}
	return operator == "2"+suffix
}

func (h *streamFileHandler) Validate(spec RedirectionSpec) error {
	if spec.Target == "" {
		return ErrMissingRedirectDestination
	}
	return nil
}

func (h *streamFileHandler) Apply(spec RedirectionSpec, ioBindings *IOBindings, opener FileOpener) (func(), error) {
	flag := os.O_CREATE | os.O_WRONLY
	if h.truncate {
		flag |= os.O_TRUNC
	} else {
		flag |= os.O_APPEND
	}

	file, err := opener.OpenWrite(spec.Target, flag, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", spec.Target, err)
	}

	switch h.fd {
	case 1:
		ioBindings.Stdout = file
	case 2:
		ioBindings.Stderr = file
	}

	return func() { file.Close() }, nil
}

// RedirectionManager routes a RedirectionSpec to the handler that owns
// its operator, validates every spec up front (so applying redirections
// is all-or-nothing), and tracks which operators it recognizes so
// CommandParser and the manager never disagree about the grammar.
type RedirectionManager struct {
	handlers   []RedirectionHandler
	fileOpener FileOpener
	knownOps   []string
}

// NewRedirectionManager builds a manager with the six standard
// stdout/stderr file redirection operators already registered.
func NewRedirectionManager(fileOpener FileOpener) *RedirectionManager {
	rManager := &RedirectionManager{fileOpener: fileOpener}

	rManager.RegisterHandler(&streamFileHandler{fd: 1, truncate: true})
	rManager.RegisterKnownOperator(">")
	rManager.RegisterKnownOperator("1>")

	rManager.RegisterHandler(&streamFileHandler{fd: 1, truncate: false})
	rManager.RegisterKnownOperator(">>")
	rManager.RegisterKnownOperator("1>>")

	rManager.RegisterHandler(&streamFileHandler{fd: 2, truncate: true})
	rManager.RegisterKnownOperator("2>")

	rManager.RegisterHandler(&streamFileHandler{fd: 2, truncate: false})
	rManager.RegisterKnownOperator("2>>")

	return rManager
}

// GetHandler returns the first registered handler whose CanHandle
// accepts operator.
func (rManager *RedirectionManager) GetHandler(operator string) (RedirectionHandler, error) {
	for _, handler := range rManager.handlers {
		if handler.CanHandle(operator) {
			return handler, nil
		}
	}
	return nil, fmt.Errorf("unsupported redirection operator: %s", operator)
}

// RegisterHandler appends a handler to the routing list. Handlers are
// tried in registration order.
func (rManager *RedirectionManager) RegisterHandler(handler RedirectionHandler) {
	rManager.handlers = append(rManager.handlers, handler)
}

// RegisterKnownOperator records operator as one CommandParser should
// recognize while folding a token stream (see KnownOperators).
func (rManager *RedirectionManager) RegisterKnownOperator(operator string) {
	rManager.knownOps = append(rManager.knownOps, operator)
}

// KnownOperators returns the operators registered with this manager, in
// registration order. CommandParser uses this as the single source of
// truth for what counts as a redirection operator, so a custom manager
// with extra operators is automatically recognized during parsing too.
func (rManager *RedirectionManager) KnownOperators() []string {
	return append([]string(nil), rManager.knownOps...)
}

// ValidateSpecs checks every spec against its handler before any file
// is opened, so a late validation failure can never leave an earlier
// redirection half-applied.
func (rManager *RedirectionManager) ValidateSpecs(specs []RedirectionSpec) error {
	for _, spec := range specs {
		handler, err := rManager.GetHandler(spec.Operator)
		if err != nil {
			return err
		}
		if err := handler.Validate(spec); err != nil {
			return fmt.Errorf("invalid redirection '%s %s': %w", spec.Operator, spec.Target, err)
		}
	}
	return nil
}

// ApplyRedirections validates specs, then applies them in order onto a
// copy of baseBindings — later redirections to the same stream win, so
// "cmd > a.txt > b.txt" ends up writing to b.txt. On any Apply failure,
// everything opened so far is closed and baseBindings is returned
// unchanged. The returned cleanup must be called once the caller is
// done with the bindings.
func (rManager *RedirectionManager) ApplyRedirections(specs []RedirectionSpec, baseBindings IOBindings) (IOBindings, func(), error) {
	if err := rManager.ValidateSpecs(specs); err != nil {
		return baseBindings, nil, err
	}

	var cleanupFuncs []func()
	bindings := baseBindings

	for _, spec := range specs {
		handler, _ := rManager.GetHandler(spec.Operator)

		fn, err := handler.Apply(spec, &bindings, rManager.fileOpener)
		if err != nil {
			for _, c := range cleanupFuncs {
				c()
			}
			return baseBindings, nil, err
		}

		if fn != nil {
			cleanupFuncs = append(cleanupFuncs, fn)
		}
	}

	cleanup := func() {
		for _, c := range cleanupFuncs {
			c()
		}
	}

	return bindings, cleanup, nil
}
