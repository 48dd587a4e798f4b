// Command toolflow is a small interactive harness for the tool scheduling
// core: it wires a tcell screen to the manager, registers a demo tool (and
// optionally a Lua script tool), and pumps terminal events through the
// dispatcher. Unconsumed q or Ctrl-C quits.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/toolflow/internal/config"
	"github.com/dshills/toolflow/internal/dispatcher"
	"github.com/dshills/toolflow/internal/event"
	"github.com/dshills/toolflow/internal/manager"
	"github.com/dshills/toolflow/internal/plugin"
	"github.com/dshills/toolflow/internal/tool"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
)

type options struct {
	configPath string
	scriptPath string
	scriptName string
	version    bool
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.configPath, "config", "toolflow.toml", "Path to the tool settings file")
	flag.StringVar(&opts.scriptPath, "script", "", "Path to a Lua tool script to register")
	flag.StringVar(&opts.scriptName, "script-name", "script.Tool", "Name for the Lua tool")
	flag.BoolVar(&opts.version, "version", false, "Print version and exit")
	flag.Parse()
	return opts
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()
	if opts.version {
		fmt.Println("toolflow", version)
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading settings: %v\n", err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: creating screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: initializing screen: %v\n", err)
		return 1
	}
	defer screen.Fini()
	screen.EnableMouse()

	mgr := manager.New()
	mgr.SetEnvironment(nil, nil, nil, screen)
	mgr.SetErrorFunc(func(name string, err error) {
		status(screen, fmt.Sprintf("tool %s: %v", name, err))
	})

	echo := newEchoTool(screen)
	if cfg.ToolEnabled(echo.Name()) {
		if err := mgr.RegisterTool(echo); err != nil {
			fmt.Fprintf(os.Stderr, "Error: registering %s: %v\n", echo.Name(), err)
			return 1
		}
	}

	if opts.scriptPath != "" && cfg.ToolEnabled(opts.scriptName) {
		st, err := plugin.LoadScriptTool(opts.scriptName, opts.scriptPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer st.Close()
		if err := mgr.RegisterTool(st); err != nil {
			fmt.Fprintf(os.Stderr, "Error: registering %s: %v\n", st.Name(), err)
			return 1
		}
	}

	mgr.InvokeTool(echo.ID())
	for _, name := range cfg.Startup {
		if !mgr.InvokeToolByName(name) {
			status(screen, fmt.Sprintf("startup tool %q not registered", name))
		}
	}

	disp := dispatcher.New(mgr)
	for {
		tev := screen.PollEvent()
		if tev == nil {
			return 0
		}
		if disp.DispatchEvent(tev) {
			screen.Show()
			continue
		}
		// Default handling for unconsumed events.
		if key, ok := tev.(*tcell.EventKey); ok {
			if key.Key() == tcell.KeyCtrlC || key.Rune() == 'q' {
				return 0
			}
		}
	}
}

// echoTool stays active and shows the last event it received on the
// status line. It is demonstration wiring, not an editing behavior.
type echoTool struct {
	tool.Base
	screen tcell.Screen
}

func newEchoTool(screen tcell.Screen) *echoTool {
	return &echoTool{Base: tool.NewBase("demo.Echo"), screen: screen}
}

func (e *echoTool) Reset() {
	e.Go(e.show, event.MakeEvent(event.CategoryCommand, event.ActionActivate, nil))
}

func (e *echoTool) show(ev event.Event) error {
	if !ev.IsActivation() {
		status(e.screen, describe(ev))
	}
	// Stay active for everything except quit keys, which are passed on
	// to default handling by simply not matching them here.
	e.Go(e.show,
		event.MakeEvent(event.CategoryMouse, event.ActionAny, nil),
		event.MakeEvent(event.CategoryCommand, event.ActionCancel, nil),
		event.MakeEvent(event.CategoryView, event.ActionAny, nil),
	)
	return nil
}

func describe(ev event.Event) string {
	switch p := ev.Params.(type) {
	case dispatcher.MouseInfo:
		return fmt.Sprintf("%s at (%d,%d)", ev, p.X, p.Y)
	case dispatcher.SizeInfo:
		return fmt.Sprintf("resize to %dx%d", p.Width, p.Height)
	default:
		return ev.String()
	}
}

func status(screen tcell.Screen, msg string) {
	width, height := screen.Size()
	y := height - 1
	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
	}
	for x, r := range msg {
		if x >= width {
			break
		}
		screen.SetContent(x, y, r, nil, tcell.StyleDefault)
	}
	screen.Show()
}
