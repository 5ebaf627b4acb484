package weave

import (
	"sync"

	"github.com/google/uuid"

	"github.com/go-drift/weave/pkg/core"
	"github.com/go-drift/weave/pkg/errors"
	"github.com/go-drift/weave/pkg/options"
	"github.com/go-drift/weave/pkg/telemetry"
)

// Runtime is the global registration facade: it owns the root component
// definition, the Config and the installed-plugin registry.
//
// A Runtime is created once at application setup. Mixin is the only
// operation that changes the root configuration after subclasses exist.
type Runtime struct {
	id      string
	config  *Config
	root    *core.Node
	logger  *telemetry.Logger
	metrics *telemetry.Metrics

	pluginMu  sync.Mutex
	installed []InstalledPlugin
	pending   []any
}

// Option configures a Runtime.
type Option func(*settings)

type settings struct {
	config        *Config
	logger        *telemetry.Logger
	rootOptions   *options.Options
	collaborators core.Collaborators
}

// WithConfig uses cfg as the runtime's Config.
func WithConfig(cfg *Config) Option {
	return func(s *settings) {
		s.config = cfg
	}
}

// WithLogger uses logger instead of one built from Config.Logging.
func WithLogger(logger *telemetry.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithRootOptions seeds the root component configuration.
func WithRootOptions(opts *options.Options) Option {
	return func(s *settings) {
		s.rootOptions = opts
	}
}

// WithCollaborators replaces the lifecycle stages used by instantiation.
func WithCollaborators(c core.Collaborators) Option {
	return func(s *settings) {
		s.collaborators = c
	}
}

// New creates a Runtime.
func New(opts ...Option) (*Runtime, error) {
	s := settings{}
	for _, opt := range opts {
		opt(&s)
	}
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if s.config.OptionMergeStrategies == nil {
		s.config.OptionMergeStrategies = options.Strategies{}
	}

	id := uuid.NewString()
	logger := s.logger
	if logger == nil {
		var err error
		logger, err = telemetry.NewLogger(s.config.Logging)
		if err != nil {
			return nil, &errors.WeaveError{Op: "weave.New", Kind: errors.KindConfig, Err: err}
		}
	}
	logger = logger.WithRuntimeID(id)

	rt := &Runtime{
		id:      id,
		config:  s.config,
		logger:  logger,
		metrics: telemetry.NewMetrics(s.config.Metrics),
	}

	table := strategyTable{cfg: s.config, defaults: options.DefaultStrategies()}
	rt.root = core.NewRoot(s.rootOptions, core.Env{
		Merger:        options.NewMerger(table),
		Logger:        logger.NewComponentLogger("core"),
		Metrics:       rt.metrics,
		Collaborators: s.collaborators,
		Warn:          rt.reportWarning,
		Performance: func() bool {
			return !rt.config.Production && rt.config.Performance
		},
	})

	logger.Debug("runtime created")
	return rt, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Runtime {
	rt, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return rt
}

// ID returns the runtime's unique id, attached to every log event.
func (rt *Runtime) ID() string {
	return rt.id
}

// Config returns the runtime's Config. Set fields on it directly.
func (rt *Runtime) Config() *Config {
	return rt.config
}

// SetConfig does not replace the Config; it only reports that fields
// should be set individually.
func (rt *Runtime) SetConfig(*Config) {
	rt.warn("weave.SetConfig", "", "do not replace the config object, set individual fields instead")
}

// Root returns the root component definition.
func (rt *Runtime) Root() *core.Node {
	return rt.root
}

// Logger returns the runtime logger.
func (rt *Runtime) Logger() *telemetry.Logger {
	return rt.logger
}

// Metrics returns the runtime metrics.
func (rt *Runtime) Metrics() *telemetry.Metrics {
	return rt.metrics
}

// Extend creates a component definition deriving from the root.
func (rt *Runtime) Extend(raw *options.Options) *core.Node {
	return rt.root.Extend(raw)
}

// Mixin merges partial into the root configuration. Every existing
// definition recomputes its configuration the next time it is resolved.
func (rt *Runtime) Mixin(partial *options.Options) *Runtime {
	rt.root.Mixin(partial)
	rt.logger.Zerolog().Info().Strs("fields", partial.Keys()).Msg("global mixin applied")
	return rt
}

// New creates a root-level instance on the full path, merging the root
// configuration with opts.
func (rt *Runtime) New(opts *options.Options) *core.Instance {
	return rt.root.Instantiate(opts, nil)
}

// Instantiate creates an instance of node. A nil req takes the full path.
func (rt *Runtime) Instantiate(node *core.Node, opts *options.Options, req *core.InternalRequest) *core.Instance {
	return node.Instantiate(opts, req)
}

func (rt *Runtime) warn(op, component, msg string) {
	rt.metrics.RecordWarning(op)
	rt.reportWarning(errors.NewWarning(op, component, msg))
}

// reportWarning routes an advisory diagnostic according to Config. Nothing
// is reported in production or silent mode.
func (rt *Runtime) reportWarning(w *errors.Warning) {
	if rt.config.Production {
		return
	}
	if rt.config.WarnHandler != nil {
		rt.config.WarnHandler(w)
		return
	}
	if rt.config.Silent {
		return
	}
	errors.Warn(w)
}
