package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"cdr.dev/slog"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/browser"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/gridwire/gridwire/lib/log"
)

// watcher recompiles the input file whenever it changes and pushes the result
// to connected browsers over a websocket.
//
// fsnotify events are unreliable across platforms and editors, so the loop
// combines three defenses: a retrying add (editors replace files on save,
// which drops the watch), a short burst-eating timer (one logical save can
// surface as several events), and a slow poll that compares modification
// times in case an event was missed entirely.
type watcher struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	opts opts

	compileCh chan struct{}

	fw *fsnotify.Watcher
	l  net.Listener

	wsclientsMu sync.Mutex
	closing     bool
	wsclientsWG sync.WaitGroup
	wsclients   map[*wsclient]struct{}

	errMu sync.Mutex
	err   error

	resMu sync.Mutex
	res   *compileResult
}

type compileResult struct {
	SVG string `json:"svg"`
	Err string `json:"err"`
}

func newWatcher(ctx context.Context, o opts) (*watcher, error) {
	ctx, cancel := context.WithCancel(ctx)
	w := &watcher{
		ctx:    ctx,
		cancel: cancel,
		opts:   o,

		compileCh: make(chan struct{}, 1),
		wsclients: make(map[*wsclient]struct{}),
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		cancel()
		return nil, err
	}
	w.fw = fw

	l, err := net.Listen("tcp", net.JoinHostPort(o.host, o.port))
	if err != nil {
		cancel()
		fw.Close()
		return nil, err
	}
	w.l = l
	log.Info(ctx, "listening", slog.F("url", fmt.Sprintf("http://%v", l.Addr())))
	return w, nil
}

func (w *watcher) run() error {
	defer w.close()

	w.goFunc(w.watchLoop)
	w.goFunc(w.compileLoop)
	w.goServe()

	if w.opts.open {
		url := fmt.Sprintf("http://%v", w.l.Addr())
		if err := browser.OpenURL(url); err != nil {
			log.Warn(w.ctx, "failed to open browser", slog.F("url", url), slog.Error(err))
		}
	}

	w.wg.Wait()
	w.close()
	return w.err
}

func (w *watcher) close() {
	w.wsclientsMu.Lock()
	if w.closing {
		w.wsclientsMu.Unlock()
		return
	}
	w.closing = true
	w.wsclientsMu.Unlock()

	w.cancel()
	if w.fw != nil {
		w.setErr(w.fw.Close())
	}
	if w.l != nil {
		w.setErr(w.l.Close())
	}
	w.wsclientsWG.Wait()
}

func (w *watcher) setErr(err error) {
	w.errMu.Lock()
	if w.err == nil && !errors.Is(err, context.Canceled) && !errors.Is(err, net.ErrClosed) {
		w.err = err
	}
	w.errMu.Unlock()
}

func (w *watcher) goFunc(fn func(context.Context) error) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.cancel()
		w.setErr(fn(w.ctx))
	}()
}

func (w *watcher) watchLoop(ctx context.Context) error {
	lastModified, err := w.ensureAddWatch(ctx, w.opts.inputPath)
	if err != nil {
		return err
	}
	log.Info(ctx, "compiling", slog.F("path", w.opts.inputPath))
	w.requestCompile()

	// Wait at least 16ms after a sequence of events so that whoever is
	// editing the file is done; editors commonly emit several events per
	// save.
	eatBurstTimer := time.NewTimer(0)
	<-eatBurstTimer.C
	pollTicker := time.NewTicker(time.Second * 10)
	defer pollTicker.Stop()

	for {
		select {
		case <-pollTicker.C:
			// In case an event indicating the path became unwatchable was
			// missed and no more events are coming.
			mt, err := w.ensureAddWatch(ctx, w.opts.inputPath)
			if err != nil {
				return err
			}
			if !mt.Equal(lastModified) {
				lastModified = mt
				w.requestCompile()
			}
		case ev, ok := <-w.fw.Events:
			if !ok {
				return errors.New("fsnotify watcher closed")
			}
			log.Debug(ctx, "file system event", slog.F("event", ev.String()))
			mt, err := w.ensureAddWatch(ctx, w.opts.inputPath)
			if err != nil {
				return err
			}
			if ev.Op == fsnotify.Chmod && mt.Equal(lastModified) {
				// Benign chmod.
				continue
			}
			lastModified = mt
			eatBurstTimer.Reset(time.Millisecond * 16)
		case <-eatBurstTimer.C:
			log.Info(ctx, "detected change, recompiling", slog.F("path", w.opts.inputPath))
			w.requestCompile()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return errors.New("fsnotify watcher closed")
			}
			log.Error(ctx, "fsnotify error", slog.Error(err))
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *watcher) requestCompile() {
	select {
	case w.compileCh <- struct{}{}:
	default:
	}
}

// ensureAddWatch retries adding the watch with backoff. Editors that save by
// rename-and-replace leave a window where the path does not exist.
func (w *watcher) ensureAddWatch(ctx context.Context, path string) (time.Time, error) {
	interval := time.Millisecond * 16
	tc := time.NewTimer(0)
	<-tc.C
	for {
		mt, err := w.addWatch(path)
		if err == nil {
			return mt, nil
		}
		if interval >= time.Second {
			log.Error(ctx, "failed to watch, retrying",
				slog.F("path", path), slog.F("interval", interval), slog.Error(err))
		}

		tc.Reset(interval)
		select {
		case <-tc.C:
			if interval < time.Second {
				interval = time.Second
			} else if interval < time.Second*16 {
				interval *= 2
			}
		case <-ctx.Done():
			return time.Time{}, ctx.Err()
		}
	}
}

func (w *watcher) addWatch(path string) (time.Time, error) {
	if err := w.fw.Add(path); err != nil {
		return time.Time{}, err
	}
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return fi.ModTime(), nil
}

func (w *watcher) compileLoop(ctx context.Context) error {
	firstCompile := true
	for {
		select {
		case <-w.compileCh:
		case <-ctx.Done():
			return ctx.Err()
		}

		svg, err := compile(ctx, w.opts)
		errs := ""
		if err != nil {
			prefix := "re"
			if firstCompile {
				prefix = ""
			}
			err = fmt.Errorf("failed to %scompile: %w", prefix, err)
			errs = err.Error()
			log.Error(ctx, "compile failed", slog.Error(err))
		} else if w.opts.outputPath != "" {
			if err := os.WriteFile(w.opts.outputPath, svg, 0o644); err != nil {
				log.Error(ctx, "failed to write output", slog.Error(err))
			}
		}
		firstCompile = false

		w.broadcast(&compileResult{SVG: string(svg), Err: errs})
	}
}

func (w *watcher) goServe() {
	m := http.NewServeMux()
	m.HandleFunc("/", w.handleRoot)
	m.HandleFunc("/watch", w.handleWatch)

	s := &http.Server{Handler: m}
	w.goFunc(func(ctx context.Context) error {
		go func() {
			<-ctx.Done()
			sctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
			defer cancel()
			s.Shutdown(sctx)
		}()
		err := s.Serve(w.l)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
}

func (w *watcher) getRes() *compileResult {
	w.resMu.Lock()
	defer w.resMu.Unlock()
	return w.res
}

func (w *watcher) handleRoot(hw http.ResponseWriter, r *http.Request) {
	hw.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(hw, watchPage, w.opts.inputPath)
}

func (w *watcher) handleWatch(hw http.ResponseWriter, r *http.Request) {
	w.wsclientsMu.Lock()
	if w.closing {
		w.wsclientsMu.Unlock()
		http.Error(hw, "server shutting down", http.StatusServiceUnavailable)
		return
	}
	// Register before the upgrade so close() waits for this connection even
	// if it hijacks between upgrade and registration.
	w.wsclientsWG.Add(1)
	w.wsclientsMu.Unlock()

	c, err := websocket.Accept(hw, r, &websocket.AcceptOptions{
		CompressionMode: websocket.CompressionDisabled,
	})
	if err != nil {
		w.wsclientsWG.Done()
		log.Warn(w.ctx, "websocket accept failed", slog.Error(err))
		return
	}

	go func() {
		defer w.wsclientsWG.Done()
		defer c.Close(websocket.StatusInternalError, "internal error")

		ctx, cancel := context.WithTimeout(w.ctx, time.Hour)
		defer cancel()

		cl := &wsclient{
			w:         w,
			resultsCh: make(chan struct{}, 1),
			c:         c,
		}

		w.wsclientsMu.Lock()
		w.wsclients[cl] = struct{}{}
		w.wsclientsMu.Unlock()
		defer func() {
			w.wsclientsMu.Lock()
			delete(w.wsclients, cl)
			w.wsclientsMu.Unlock()
		}()

		ctx = cl.c.CloseRead(ctx)
		go wsHeartbeat(ctx, cl.c)
		_ = cl.writeLoop(ctx)
	}()
}

type wsclient struct {
	w         *watcher
	resultsCh chan struct{}
	c         *websocket.Conn
}

func (cl *wsclient) writeLoop(ctx context.Context) error {
	for {
		if res := cl.w.getRes(); res != nil {
			if err := cl.write(ctx, res); err != nil {
				return err
			}
		}

		select {
		case <-cl.resultsCh:
		case <-ctx.Done():
			cl.c.Close(websocket.StatusGoingAway, "server shutting down")
			return ctx.Err()
		}
	}
}

func (cl *wsclient) write(ctx context.Context, res *compileResult) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*30)
	defer cancel()
	return wsjson.Write(ctx, cl.c, res)
}

func (w *watcher) broadcast(res *compileResult) {
	w.resMu.Lock()
	w.res = res
	w.resMu.Unlock()

	w.wsclientsMu.Lock()
	defer w.wsclientsMu.Unlock()
	log.Info(w.ctx, "broadcasting update", slog.F("clients", len(w.wsclients)))
	for cl := range w.wsclients {
		select {
		case cl.resultsCh <- struct{}{}:
		default:
		}
	}
}

func wsHeartbeat(ctx context.Context, c *websocket.Conn) {
	defer c.Close(websocket.StatusInternalError, "internal error")

	t := time.NewTimer(0)
	<-t.C
	for {
		if err := c.Ping(ctx); err != nil {
			return
		}

		t.Reset(time.Second * 30)
		select {
		case <-t.C:
		case <-ctx.Done():
			return
		}
	}
}

const watchPage = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>%s</title>
	<style>
		body { margin: 0; font-family: ui-sans-serif, system-ui, sans-serif; }
		#err { display: none; padding: 1rem; color: #fff; background: #b00020; white-space: pre-wrap; }
		#svg { padding: 1rem; }
	</style>
</head>
<body>
	<div id="err"></div>
	<div id="svg"></div>
	<script>
	(function connect() {
		var proto = location.protocol === "https:" ? "wss:" : "ws:";
		var ws = new WebSocket(proto + "//" + location.host + "/watch");
		ws.onmessage = function(ev) {
			var res = JSON.parse(ev.data);
			var err = document.getElementById("err");
			if (res.err) {
				err.textContent = res.err;
				err.style.display = "block";
			} else {
				err.style.display = "none";
			}
			if (res.svg) {
				document.getElementById("svg").innerHTML = res.svg;
			}
		};
		ws.onclose = function() { setTimeout(connect, 1000); };
	})();
	</script>
</body>
</html>
`
