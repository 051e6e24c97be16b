package oauth

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"vercelctl/pkg/logging"
)

// CallbackPath is the only route served by the callback listener.
const CallbackPath = "/oauth/callback"

// ListenFunc binds a listener. net.Listen is the default.
type ListenFunc func(network, address string) (net.Listener, error)

// CallbackHandler validates a callback and decides which page to show.
// A nil error means the login completed.
type CallbackHandler func(ctx context.Context, code, state string) (Page, error)

// CallbackServer is a temporary loopback HTTP server for receiving the OAuth
// redirect. It processes a single callback and reports its outcome on Result.
type CallbackServer struct {
	port      int
	listen    ListenFunc
	handler   CallbackHandler
	server    *http.Server
	listeners []net.Listener
	resultCh  chan error

	claimed   atomic.Bool
	closeOnce sync.Once
}

// NewCallbackServer creates a callback server for port. Port 0 picks a free
// port, which is only useful in tests since the redirect URI must be known
// to the provider.
func NewCallbackServer(port int, handler CallbackHandler, listen ListenFunc) *CallbackServer {
	if listen == nil {
		listen = net.Listen
	}
	return &CallbackServer{
		port:     port,
		listen:   listen,
		handler:  handler,
		resultCh: make(chan error, 1),
	}
}

// Start binds 127.0.0.1:<port> and begins serving. It returns the bound port.
// The redirect URI names localhost, so the same port is also bound on ::1
// when the host has an IPv6 loopback; only the IPv4 bind is required.
// Nothing needs closing when Start fails.
func (s *CallbackServer) Start(ctx context.Context) (int, error) {
	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(s.port))

	listener, err := s.listen("tcp", addr)
	if err != nil {
		return 0, &ListenError{Addr: addr, Err: err}
	}
	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		s.port = tcpAddr.Port
	}
	s.listeners = append(s.listeners, &onceCloseListener{Listener: listener})

	v6addr := net.JoinHostPort("::1", strconv.Itoa(s.port))
	if v6, err := s.listen("tcp", v6addr); err != nil {
		logging.Debug("OAuth", "IPv6 loopback not bound on %s: %v", v6addr, err)
	} else {
		s.listeners = append(s.listeners, &onceCloseListener{Listener: v6})
	}

	mux := http.NewServeMux()
	mux.HandleFunc(CallbackPath, func(w http.ResponseWriter, r *http.Request) {
		s.handleCallback(ctx, w, r)
	})

	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	for _, l := range s.listeners {
		go s.serve(l)
		logging.Debug("OAuth", "Callback server listening on %s", l.Addr())
	}
	return s.port, nil
}

func (s *CallbackServer) serve(l net.Listener) {
	if err := s.server.Serve(l); err != nil && err != http.ErrServerClosed {
		logging.Error("OAuth", err, "Callback server stopped unexpectedly")
		select {
		case s.resultCh <- err:
		default:
		}
	}
}

// Result delivers the outcome of the first callback, or a serve error.
func (s *CallbackServer) Result() <-chan error {
	return s.resultCh
}

// Close shuts the server down and closes its listeners. Only the first call
// has any effect.
func (s *CallbackServer) Close() {
	s.closeOnce.Do(func() {
		if s.server != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = s.server.Shutdown(ctx)
		}
		for _, l := range s.listeners {
			_ = l.Close()
		}
	})
}

func (s *CallbackServer) handleCallback(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Later callbacks are answered without waiting for the first one's
	// exchange to finish.
	if !s.claimed.CompareAndSwap(false, true) {
		writePage(w, pageAlreadyProcessed)
		return
	}

	query := r.URL.Query()
	page, err := s.handler(ctx, query.Get("code"), query.Get("state"))
	writePage(w, page)

	select {
	case s.resultCh <- err:
	default:
	}
}

func writePage(w http.ResponseWriter, page Page) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "no-referrer")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(page.Status)
	if err := page.Render(w); err != nil {
		logging.Error("OAuth", err, "Failed to render callback page")
	}
}

// onceCloseListener lets both http.Server and CallbackServer.Close close a
// listener while the underlying Close runs once.
type onceCloseListener struct {
	net.Listener
	once sync.Once
	err  error
}

func (l *onceCloseListener) Close() error {
	l.once.Do(func() { l.err = l.Listener.Close() })
	return l.err
}
