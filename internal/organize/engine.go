package organize

import (
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"mover/internal/config"
	"mover/internal/errors"
	"mover/internal/log"
	"mover/internal/report"
	"mover/internal/scan"
	"mover/pkg/types"
)

// Engine handles file organization operations
type Engine struct {
	fs       afero.Fs
	sink     report.Sink
	mu       sync.RWMutex // Protects produced
	produced map[string]struct{}
}

// New creates an Engine that works on fs and reports to sink
func New(fs afero.Fs, sink report.Sink) *Engine {
	if sink == nil {
		sink = report.Discard
	}
	return &Engine{
		fs:       fs,
		sink:     sink,
		produced: make(map[string]struct{}),
	}
}

// OrganizeDirectory scans dir and processes its files. Only a failure to
// list dir is returned; per-file problems are reported as events.
func (e *Engine) OrganizeDirectory(cfg *config.Config, dir string, mode types.Mode) (types.Summary, error) {
	candidates, err := scan.Scan(e.fs, dir, e.sink)
	if err != nil {
		return types.Summary{}, err
	}
	return e.Process(cfg, candidates, mode), nil
}

// Process organizes candidates in order and ends with a Summary event.
// Processed counts the candidates that matched a rule, whether they were
// moved, skipped or failed.
func (e *Engine) Process(cfg *config.Config, candidates []types.Candidate, mode types.Mode) types.Summary {
	var rules []config.FileRule
	if cfg != nil {
		rules = cfg.Rules
	}

	summary := types.Summary{Total: len(candidates)}
	var plan *simulation
	if mode.Simulate {
		plan = newSimulation()
	}
	log.LogWithFields(log.F("candidates", len(candidates)), log.F("rules", len(rules)), log.F("mode", mode.String())).Info("organizing")

	for _, c := range candidates {
		index, ok := MatchRule(rules, c.Name)
		if !ok {
			log.Debugf("no rule matches %s", c)
			continue
		}
		summary.Processed++
		e.organizeFile(c, index, rules[index], mode, plan)
	}

	result := summary
	e.sink.Emit(types.Event{Kind: types.EventSummary, Summary: &result})
	return summary
}

// simulation tracks the moves a simulated pass has reported, so that later
// candidates see the directory as a real pass would leave it.
type simulation struct {
	placed  map[string]struct{}
	vacated map[string]struct{}
}

func newSimulation() *simulation {
	return &simulation{placed: make(map[string]struct{}), vacated: make(map[string]struct{})}
}

func (s *simulation) exists(path string, onDisk bool) bool {
	path = filepath.Clean(path)
	if _, ok := s.placed[path]; ok {
		return true
	}
	if _, ok := s.vacated[path]; ok {
		return false
	}
	return onDisk
}

func (s *simulation) move(src, dest string) {
	src, dest = filepath.Clean(src), filepath.Clean(dest)
	delete(s.placed, src)
	s.vacated[src] = struct{}{}
	delete(s.vacated, dest)
	s.placed[dest] = struct{}{}
}

// organizeFile applies rule to one candidate. Any failure is reported and
// leaves the file where it was. plan is nil unless mode.Simulate is set.
func (e *Engine) organizeFile(c types.Candidate, index int, rule config.FileRule, mode types.Mode, plan *simulation) {
	e.sink.Emit(types.Event{Kind: types.EventMatch, File: c.Name, Rule: index + 1})

	name, steps := Transform(c.Name, rule)
	for _, step := range steps {
		e.sink.Emit(types.Event{Kind: step.Kind, File: c.Name, From: step.From, To: step.To, Simulated: mode.Simulate})
	}

	destDir := findDestination(rule.Destination, filepath.Dir(c.Path))
	dest := filepath.Join(destDir, name)

	exists, err := afero.Exists(e.fs, dest)
	if err != nil {
		log.LogWithError(err).Warnf("cannot check destination %s, assuming it is free", dest)
	}
	if plan != nil {
		exists = plan.exists(dest, exists)
	}
	if exists && !mode.Overwrite {
		log.Infof("skipping %s: %s already exists", c.Name, dest)
		e.sink.Emit(types.Event{Kind: types.EventSkip, File: c.Name, To: dest, Simulated: mode.Simulate})
		return
	}

	move := types.Event{Kind: types.EventMove, File: c.Name, From: c.Path, To: dest, Simulated: mode.Simulate}
	if plan != nil {
		plan.move(c.Path, dest)
		e.sink.Emit(move)
		return
	}

	if err := e.ensureDir(destDir); err != nil {
		e.fail(err)
		return
	}

	if err := e.MoveFile(c.Path, dest); err != nil {
		if errors.IsKind(err, errors.RemoveFailed) {
			e.markProduced(dest)
		}
		e.fail(err)
		return
	}

	e.markProduced(dest)
	log.LogWithFields(log.F("src", c.Path), log.F("dest", dest)).Info("moved")
	e.sink.Emit(move)
}

// findDestination resolves a rule destination. Relative destinations are
// taken from the directory the file was found in.
func findDestination(destination, sourceDir string) string {
	if filepath.IsAbs(destination) {
		return filepath.Clean(destination)
	}
	return filepath.Join(sourceDir, destination)
}

func (e *Engine) ensureDir(dir string) error {
	if ok, _ := afero.DirExists(e.fs, dir); ok {
		return nil
	}
	if err := e.fs.MkdirAll(dir, 0755); err != nil {
		return errors.NewFileError("failed to create destination directory", dir, errors.DirectoryCreateFailed, err)
	}
	log.Debugf("created directory %s", dir)
	return nil
}

func (e *Engine) fail(err error) {
	log.LogWithError(err).Info("file abandoned")
	e.sink.Emit(report.ErrorEvent(err))
}

func (e *Engine) markProduced(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.produced[filepath.Clean(path)] = struct{}{}
}

// Produced reports whether path is a file this engine moved into place.
// Watch mode uses it to ignore the events caused by its own moves.
func (e *Engine) Produced(path string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.produced[filepath.Clean(path)]
	return ok
}
