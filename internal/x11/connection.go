package x11

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/1broseidon/winkit/backend"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

// X11SocketDir is where local X servers create their sockets.
const X11SocketDir = "/tmp/.X11-unix"

var readDirFn = os.ReadDir

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil   *xgbutil.XUtil
	Root    xproto.Window
	Display string
}

// NewConnection connects to display, falling back to $DISPLAY and then to
// the highest-numbered local X socket.
func NewConnection(display string) (*Connection, error) {
	display = ResolveDisplay(display)
	if display == "" {
		return nil, fmt.Errorf("DISPLAY is not set and no X socket found in %s: %w", X11SocketDir, backend.ErrNoDisplay)
	}

	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X display %q: %w: %w", display, backend.ErrNoDisplay, err)
	}

	// Required before keycodes can be turned into key names.
	keybind.Initialize(xu)

	return &Connection{
		XUtil:   xu,
		Root:    xu.RootWin(),
		Display: display,
	}, nil
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// Atom interns name.
func (c *Connection) Atom(name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(c.XUtil.Conn(), false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("failed to intern %s: %w", name, err)
	}
	return reply.Atom, nil
}

// ResolveDisplay picks the display to connect to.
func ResolveDisplay(display string) string {
	if d := strings.TrimSpace(display); d != "" {
		return d
	}
	if d := strings.TrimSpace(os.Getenv("DISPLAY")); d != "" {
		return d
	}
	return detectDisplayFromSockets(X11SocketDir)
}

func detectDisplayFromSockets(dir string) string {
	entries, err := readDirFn(dir)
	if err != nil {
		return ""
	}

	var displays []int
	for _, entry := range entries {
		name := entry.Name()
		if len(name) < 2 || name[0] != 'X' {
			continue
		}
		n, err := strconv.Atoi(name[1:])
		if err != nil {
			continue
		}
		displays = append(displays, n)
	}

	if len(displays) == 0 {
		return ""
	}
	sort.Ints(displays)
	return fmt.Sprintf(":%d", displays[len(displays)-1])
}
