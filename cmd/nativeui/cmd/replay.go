package cmd

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/go-drift/nativeui/cmd/nativeui/internal/config"
	"github.com/go-drift/nativeui/cmd/nativeui/internal/script"
	"github.com/go-drift/nativeui/pkg/errors"
	"github.com/go-drift/nativeui/pkg/event"
	"github.com/go-drift/nativeui/pkg/nativeui"
	"github.com/go-drift/nativeui/pkg/platform"
)

func init() {
	RegisterCommand(&Command{
		Name:  "replay",
		Short: "Replay a host event trace",
		Long: `Replay a scripted host event trace through the widget dispatcher.

The script registers recording widgets, then feeds each step to an
in-process host. Events are encoded to host wire bytes and delivered on the
events channel exactly as a native host would deliver them. One line is
printed per delivery, drop or registration change.

Flags:
  --strict          Report handle overwrites as registration errors
  --fatal           Abort (instead of printing an error) when a register
                    step receives the unsupported handle
  --verbose         Include error kinds, channels and stack traces
  --channel NAME    Events channel name (default from config)

Settings not given on the command line come from nativeui.yaml or
nativeui.toml when run inside a project.`,
		Usage: "nativeui replay [--strict] [--fatal] [--verbose] [--channel NAME] <script.yaml>",
		Run:   runReplay,
	})
}

type replayOptions struct {
	strict        bool
	fatal         bool
	verbose       bool
	eventsChannel string
}

type replayStats struct {
	steps     int
	delivered int
	dropped   int
	ignored   int
	errors    int
}

func runReplay(args []string) error {
	opts := replayOptions{eventsChannel: config.DefaultEventsChannel}
	if root, err := config.FindProjectRoot(); err == nil {
		cfg, err := config.Resolve(root)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		opts.strict = cfg.Strict
		opts.verbose = cfg.Verbose
		opts.eventsChannel = cfg.EventsChannel
	}

	var path string
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == "--strict":
			opts.strict = true
		case arg == "--fatal":
			opts.fatal = true
		case arg == "--verbose":
			opts.verbose = true
		case arg == "--channel":
			if i+1 >= len(args) {
				return fmt.Errorf("--channel requires a channel name")
			}
			opts.eventsChannel = args[i+1]
			i++
		case strings.HasPrefix(arg, "--channel="):
			opts.eventsChannel = strings.TrimPrefix(arg, "--channel=")
		case strings.HasPrefix(arg, "-"):
			return fmt.Errorf("unknown flag: %s", arg)
		default:
			if path != "" {
				return fmt.Errorf("unexpected argument: %s", arg)
			}
			path = arg
		}
	}
	if path == "" {
		return fmt.Errorf("script path is required\n\nUsage: nativeui replay <script.yaml>")
	}

	s, err := script.Load(path)
	if err != nil {
		return err
	}
	_, err = replay(stdout, s, opts)
	return err
}

// replayer owns the state of one replay session. It doubles as the error
// handler for the session so reports land in the trace output.
type replayer struct {
	w       io.Writer
	session string
	opts    replayOptions
	log     *errors.LogHandler
	manager *nativeui.WidgetManager

	step          int
	stepDelivered int
	stats         replayStats
}

func (r *replayer) printf(format string, args ...any) {
	fmt.Fprintf(r.w, "%s step %d: ", r.session, r.step)
	fmt.Fprintf(r.w, format, args...)
	fmt.Fprintln(r.w)
}

// HandleError implements errors.ErrorHandler.
func (r *replayer) HandleError(err *errors.Error) {
	r.stats.errors++
	fmt.Fprintf(r.w, "%s step %d: ", r.session, r.step)
	r.log.HandleError(err)
}

// HandlePanic implements errors.ErrorHandler.
func (r *replayer) HandlePanic(err *errors.PanicError) {
	r.stats.errors++
	fmt.Fprintf(r.w, "%s step %d: ", r.session, r.step)
	r.log.HandlePanic(err)
}

// hostCall answers syscalls the dispatcher makes while replaying.
func (r *replayer) hostCall(channel, method string, args any) (any, error) {
	if channel == "nativeui/system" && method == "panic" {
		m, _ := args.(map[string]any)
		r.printf("host abort: %v", m["message"])
		return nil, nil
	}
	return nil, platform.ErrMethodNotFound
}

// recorder is the Widget registered for each scripted handle.
type recorder struct {
	r     *replayer
	label string
}

func (w *recorder) HandleWidgetEvent(data *event.WidgetEventData) {
	w.r.stepDelivered++
	w.r.stats.delivered++
	w.r.printf("delivered %s to %s (handle %d)%s", data.Kind, w.label, data.Handle, detail(data))
}

func detail(data *event.WidgetEventData) string {
	switch data.Kind {
	case event.WidgetEventSliderValueChanged, event.WidgetEventTabChanged:
		return fmt.Sprintf(" value=%d", data.Value)
	case event.WidgetEventItemClicked:
		return fmt.Sprintf(" item=%d", data.ItemIndex)
	case event.WidgetEventCheckBoxStateChanged:
		return fmt.Sprintf(" checked=%t", data.Checked)
	case event.WidgetEventEditBoxTextChanged, event.WidgetEventEditBoxReturn:
		return fmt.Sprintf(" text=%q", data.Text)
	}
	return ""
}

// observe runs after the manager for every decoded event and classifies
// what the manager did with it.
func (r *replayer) observe(ev event.Event) {
	switch {
	case ev.Type != event.TypeWidget:
		r.stats.ignored++
		r.printf("ignored %s event", ev.Type)
	case ev.Widget == nil:
		r.stats.dropped++
		r.printf("dropped widget event without payload")
	case r.stepDelivered == 0:
		r.stats.dropped++
		r.printf("dropped %s for handle %d (not registered)", ev.Widget.Kind, ev.Widget.Handle)
	}
}

func eventsChannel(name string) *platform.EventChannel {
	if name == "" || name == event.EventsChannel {
		return event.HostEvents()
	}
	return platform.NewEventChannel(name)
}

// replay runs s against a fresh environment and manager wired to an
// in-process host, writing the trace to w.
func replay(w io.Writer, s *script.Script, opts replayOptions) (*replayStats, error) {
	r := &replayer{
		w:       w,
		session: uuid.NewString(),
		opts:    opts,
		log:     &errors.LogHandler{Out: w, Verbose: opts.verbose},
	}

	host := platform.NewLocalBridge(r.hostCall)
	platform.SetNativeBridge(host)
	defer platform.SetNativeBridge(nil)
	platform.RegisterDispatch(func(cb func()) { cb() })
	defer platform.RegisterDispatch(nil)

	prev := errors.SetHandler(r)
	defer errors.SetHandler(prev)

	ch := eventsChannel(opts.eventsChannel)
	env := event.NewEnvironment()
	unbind := env.Bind(ch)
	defer unbind()

	r.manager = nativeui.New(env, nativeui.WithStrict(opts.strict))
	defer r.manager.Close()
	stopObserving := env.Listen(r.observe)
	defer stopObserving()

	name := s.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(w, "%s session %s: %d widgets, %d steps on %s\n", r.session, name, len(s.Widgets), len(s.Steps), ch.Name())

	for _, sw := range s.Widgets {
		func() {
			defer errors.Recover("replay.register")
			r.register(event.Handle(sw.Handle), sw.Label())
		}()
	}

	for i, step := range s.Steps {
		r.step = i + 1
		r.stepDelivered = 0
		r.stats.steps++
		r.run(host, ch.Name(), step)
	}

	st := r.stats
	fmt.Fprintf(w, "%s done: %d steps, %d delivered, %d dropped, %d ignored, %d errors\n",
		r.session, st.steps, st.delivered, st.dropped, st.ignored, st.errors)
	return &st, nil
}

func (r *replayer) run(host *platform.LocalBridge, channel string, step script.Step) {
	defer errors.Recover("replay.step")

	switch {
	case step.Event != nil:
		ev, err := step.Event.ToEvent()
		if err != nil {
			r.report(err)
			return
		}
		data, err := event.Encode(ev)
		if err != nil {
			r.report(err)
			return
		}
		if err := host.Emit(channel, data); err != nil {
			r.report(err)
		}
	case step.Raw != "":
		if err := host.Emit(channel, []byte(step.Raw)); err != nil {
			r.report(err)
		}
	case step.Register != nil:
		h := event.Handle(*step.Register)
		r.register(h, fmt.Sprintf("widget-%d", h))
	case step.Unregister != nil:
		h := event.Handle(*step.Unregister)
		_, present := r.manager.Lookup(h)
		r.manager.UnregisterWidget(h)
		if present {
			r.printf("unregistered handle %d", h)
		} else {
			r.printf("unregister handle %d: not registered", h)
		}
	}
}

func (r *replayer) register(h event.Handle, label string) {
	w := &recorder{r: r, label: label}
	if r.opts.fatal {
		r.manager.MustRegisterWidget(h, w)
		r.printf("registered %s (handle %d)", label, h)
		return
	}
	if err := r.manager.RegisterWidget(h, w); err != nil {
		kind := errors.KindRegistration
		if stderrors.Is(err, errors.ErrCapabilityUnsupported) {
			kind = errors.KindCapability
		}
		errors.Report(&errors.Error{Op: "replay.register", Kind: kind, Err: err})
		return
	}
	r.printf("registered %s (handle %d)", label, h)
}

func (r *replayer) report(err error) {
	errors.Report(&errors.Error{Op: "replay.step", Kind: errors.KindPlatform, Err: err})
}
