package prompts

import "log/slog"

// Loader loads the summarize template from a fixed path.
//
// Every call re-reads and re-parses the file, so editing the template on
// disk changes the next request without a server restart.
type Loader struct {
	path   string
	logger *slog.Logger
}

// NewLoader creates a loader for the template at path.
func NewLoader(path string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{path: path, logger: logger}
}

// Path returns the template file path.
func (l *Loader) Path() string {
	return l.path
}

// Load reads the template from disk.
func (l *Loader) Load() (*Template, error) {
	tpl, err := Load(l.path)
	if err != nil {
		l.logger.Debug("template load failed", "path", l.path, "error", err)
		return nil, err
	}
	return tpl, nil
}
