package cli

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/swaglabs/checkout-e2e/internal/config"
	"github.com/swaglabs/checkout-e2e/internal/handlers"
)

// mockHandler creates a simple test handler
func mockHandler(response string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(response))
	})
}

// createTestDeps creates ServerDependencies serving handler on port
func createTestDeps(t *testing.T, port string, handler http.Handler) ServerDependencies {
	return ServerDependencies{
		ServerConfig: config.ServerConfig{Port: port},
		Handler:      handler,
		Logger:       zaptest.NewLogger(t),
	}
}

// startTestServer starts a server with the given dependencies and returns listener, server, and port
func startTestServer(t *testing.T, deps ServerDependencies) (net.Listener, *http.Server, int) {
	t.Helper()
	listener, server, err := StartServer(deps)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	return listener, server, port
}

// httpGet makes an HTTP GET request and returns response body and status
func httpGet(t *testing.T, url string) (string, int) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("Failed to make request to %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return string(body), resp.StatusCode
}

func TestStartServer_SuccessfulStartup(t *testing.T) {
	// GIVEN
	deps := createTestDeps(t, "0", mockHandler("storefront"))

	// WHEN
	listener, server, port := startTestServer(t, deps)
	defer listener.Close()
	defer server.Close()

	// THEN
	if port == 0 {
		t.Error("Expected non-zero port")
	}

	body, status := httpGet(t, fmt.Sprintf("http://localhost:%d/", port))
	if status != http.StatusOK {
		t.Errorf("Expected status 200, got %d", status)
	}
	if body != "storefront" {
		t.Errorf("Expected 'storefront', got '%s'", body)
	}
}

func TestStartServer_InvalidPort(t *testing.T) {
	// GIVEN
	deps := createTestDeps(t, "99999", mockHandler("x"))

	// WHEN
	listener, server, err := StartServer(deps)

	// THEN
	if err == nil {
		listener.Close()
		server.Close()
		t.Error("Expected error for invalid port, got nil")
	}
}

func TestStartServer_PortAlreadyInUse(t *testing.T) {
	// GIVEN
	existingListener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to create test listener: %v", err)
	}
	defer existingListener.Close()
	port := existingListener.Addr().(*net.TCPAddr).Port

	deps := createTestDeps(t, fmt.Sprintf("%d", port), mockHandler("x"))

	// WHEN
	listener, server, err := StartServer(deps)

	// THEN
	if err == nil {
		listener.Close()
		server.Close()
		t.Error("Expected error for port already in use, got nil")
	}
}

func TestStartServer_StorefrontRoutes(t *testing.T) {
	// GIVEN
	sf, err := handlers.NewStorefront(zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create storefront: %v", err)
	}
	deps := createTestDeps(t, "0", sf.Routes())

	// WHEN
	listener, server, port := startTestServer(t, deps)
	defer listener.Close()
	defer server.Close()

	jar, _ := cookiejar.New(nil)
	client := &http.Client{Jar: jar}
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	// THEN
	resp, err := client.PostForm(baseURL+"/", url.Values{"user-name": {"standard_user"}, "password": {"secret_sauce"}})
	if err != nil {
		t.Fatalf("Login request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.Request.URL.Path != "/inventory.html" {
		t.Errorf("Expected login to land on /inventory.html, got %s", resp.Request.URL.Path)
	}
	if !strings.Contains(string(body), "inventory_container") {
		t.Error("Expected the products page after login")
	}
}

func TestStartServer_ConcurrentServers(t *testing.T) {
	// GIVEN
	listener1, server1, port1 := startTestServer(t, createTestDeps(t, "0", mockHandler("server1")))
	defer listener1.Close()
	defer server1.Close()

	listener2, server2, port2 := startTestServer(t, createTestDeps(t, "0", mockHandler("server2")))
	defer listener2.Close()
	defer server2.Close()

	// THEN
	if port1 == port2 {
		t.Error("Both servers got the same port")
	}
	if body, _ := httpGet(t, fmt.Sprintf("http://localhost:%d/", port1)); body != "server1" {
		t.Errorf("Server 1 returned wrong response: %s", body)
	}
	if body, _ := httpGet(t, fmt.Sprintf("http://localhost:%d/", port2)); body != "server2" {
		t.Errorf("Server 2 returned wrong response: %s", body)
	}
}

func TestWaitForShutdown_Signals(t *testing.T) {
	for _, sig := range []os.Signal{syscall.SIGTERM, syscall.SIGINT} {
		t.Run(sig.String(), func(t *testing.T) {
			// GIVEN
			listener, server, _ := startTestServer(t, createTestDeps(t, "0", mockHandler("x")))
			defer listener.Close()

			shutdown := make(chan os.Signal, 1)

			// WHEN
			errCh := make(chan error, 1)
			go func() {
				errCh <- WaitForShutdown(server, shutdown, zaptest.NewLogger(t))
			}()
			shutdown <- sig

			// THEN
			select {
			case err := <-errCh:
				if err != nil {
					t.Errorf("Expected nil error, got: %v", err)
				}
			case <-time.After(5 * time.Second):
				t.Fatal("WaitForShutdown did not complete")
			}
		})
	}
}

func TestWaitForShutdown_WithActiveRequests(t *testing.T) {
	// GIVEN
	slowHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.Write([]byte("done"))
	})

	listener, server, port := startTestServer(t, createTestDeps(t, "0", slowHandler))
	defer listener.Close()

	requestComplete := make(chan error, 1)
	go func() {
		resp, err := http.Get(fmt.Sprintf("http://localhost:%d/", port))
		if err == nil {
			resp.Body.Close()
		}
		requestComplete <- err
	}()
	time.Sleep(50 * time.Millisecond)

	shutdown := make(chan os.Signal, 1)

	// WHEN
	errCh := make(chan error, 1)
	go func() {
		errCh <- WaitForShutdown(server, shutdown, zaptest.NewLogger(t))
	}()
	shutdown <- syscall.SIGTERM

	// THEN
	select {
	case err := <-requestComplete:
		if err != nil {
			t.Errorf("Active request failed during shutdown: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("Request did not complete in time")
	}

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Expected nil error, got: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("WaitForShutdown did not complete")
	}
}

func TestWaitForShutdownWithTimeout_ForcesClose(t *testing.T) {
	// GIVEN
	release := make(chan struct{})
	blockingHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	})
	defer close(release)

	listener, server, port := startTestServer(t, createTestDeps(t, "0", blockingHandler))
	defer listener.Close()

	go http.Get(fmt.Sprintf("http://localhost:%d/", port))
	time.Sleep(100 * time.Millisecond)

	shutdown := make(chan os.Signal, 1)

	// WHEN
	errCh := make(chan error, 1)
	go func() {
		errCh <- WaitForShutdownWithTimeout(server, shutdown, time.Nanosecond, zaptest.NewLogger(t))
	}()
	shutdown <- syscall.SIGTERM

	// THEN
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Expected forced close to succeed, got: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Test did not complete")
	}
}

func TestRunServe_FullIntegration(t *testing.T) {
	// GIVEN
	deps := createTestDeps(t, "0", mockHandler("x"))

	// WHEN
	errCh := make(chan error, 1)
	go func() {
		errCh <- RunServe(deps)
	}()

	// Give server time to start
	time.Sleep(100 * time.Millisecond)

	p, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatalf("Failed to get process: %v", err)
	}
	if err := p.Signal(syscall.SIGTERM); err != nil {
		t.Fatalf("Failed to send signal: %v", err)
	}

	// THEN
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Expected nil error, got: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Server did not shut down within timeout")
	}
}

func TestRunServe_StartupFailure(t *testing.T) {
	err := RunServe(createTestDeps(t, "99999", mockHandler("x")))
	if err == nil {
		t.Error("Expected error for invalid port, got nil")
	}
}

// BenchmarkStartServer benchmarks server startup
func BenchmarkStartServer(b *testing.B) {
	deps := ServerDependencies{
		ServerConfig: config.ServerConfig{Port: "0"},
		Handler:      mockHandler("x"),
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		listener, server, err := StartServer(deps)
		if err != nil {
			b.Fatalf("Failed to start server: %v", err)
		}
		server.Close()
		listener.Close()
	}
}
