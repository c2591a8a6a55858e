// underground-miner-server hosts the game over SSH. Every connection gets
// its own private expedition on its own screen; nothing but the catalogs is
// shared between players. Build:
//
//	go build -o underground-miner-server ./cmd/server
//
// Usage:
//
//	./underground-miner-server [-port 2222] [-key server_host_key]
//
// Connect:
//
//	ssh -t -p 2222 localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"
	"unicode/utf8"

	"underground-miner/assets"
	"underground-miner/internal/catalog"
	"underground-miner/internal/expedition"
	"underground-miner/internal/game"
	internalssh "underground-miner/internal/ssh"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"
)

func main() {
	defaults := expedition.DefaultConfig()
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	levels := flag.String("levels", "", "Path to a levels.json overriding the built-in levels")
	treasures := flag.String("treasures", "", "Path to a treasures.json overriding the built-in treasures")
	seed := flag.Int64("seed", 0, "Random seed for every expedition (0 = time-based)")
	count := flag.Int("treasures-count", defaults.TreasureCount, "Treasures buried per expedition")
	debug := flag.Bool("debug", false, "Log at debug level")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cat, err := assets.Load(*levels, *treasures)
	if err != nil {
		logger.Error("load catalog", "error", err)
		os.Exit(1)
	}
	signer, err := loadOrCreateHostKey(*keyFile, logger)
	if err != nil {
		logger.Error("host key", "error", err)
		os.Exit(1)
	}

	cfg := defaults
	cfg.Seed = *seed
	cfg.TreasureCount = *count
	h := &host{cat: cat, cfg: cfg, log: logger}

	srv := &gossh.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: h.handleSession,
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// No auth handlers: any client may connect.
		// Add gossh.PublicKeyAuth or gossh.PasswordAuth options for real auth.
		HostSigners: []gossh.Signer{signer},
	}

	logger.Info("SSH server listening", "port", *port)
	logger.Info(fmt.Sprintf("connect with:  ssh -t -p %d -o StrictHostKeyChecking=no localhost", *port))
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// ─── host ───────────────────────────────────────────────────────────────────

// host runs one independent game per SSH connection.
type host struct {
	cat    *catalog.Catalog
	cfg    expedition.Config
	log    *slog.Logger
	active atomic.Int32
}

// handleSession is the gliderlabs SSH handler for one connection.
// It blocks for the duration of the connection so the SSH session stays open.
func (h *host) handleSession(s gossh.Session) {
	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "This game requires a PTY. Connect with: ssh -t -p 2222 <host>")
		return
	}

	name := sanitizeName(s.User())
	if name == "" {
		name = "miner"
	}
	logger := h.log.With("player", name, "remote", s.RemoteAddr().String())

	// Create a tcell screen backed by this SSH session.
	// TERM must be set in the process environment before NewTerminfoScreenFromTty.
	term := sessionTerm(pty, s.Environ())
	tty := internalssh.NewSessionTty(s, pty, winCh)
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(s, "Screen init failed: %v\n", err)
		return
	}

	n := h.active.Add(1)
	logger.Info("player connected", "term", term, "players", n)
	defer func() {
		logger.Info("player disconnected", "players", h.active.Add(-1))
	}()

	game.NewWithScreen(screen, game.Options{
		Catalog: h.cat,
		Config:  h.cfg,
		Logger:  logger,
		Name:    name,
	}).Run()
}

// termMu protects os.Setenv("TERM") around screen creation.
var termMu sync.Mutex

// allowedTerms are the TERM values a client may select. Anything else falls
// back to xterm-256color so clients cannot point terminfo lookup elsewhere.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

const defaultTerm = "xterm-256color"

// sessionTerm picks the terminal type from the PTY request, then the
// session environment.
func sessionTerm(pty gossh.Pty, environ []string) string {
	if allowedTerms[pty.Term] {
		return pty.Term
	}
	for _, env := range environ {
		if term, ok := strings.CutPrefix(env, "TERM="); ok && allowedTerms[term] {
			return term
		}
	}
	return defaultTerm
}

// maxNameBytes bounds the SSH user name shown in the game and logs.
const maxNameBytes = 16

// sanitizeName strips control characters from an SSH user name and
// truncates it to maxNameBytes without splitting a rune.
func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsControl(r) || r == utf8.RuneError {
			continue
		}
		if b.Len()+utf8.RuneLen(r) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ─── host key ───────────────────────────────────────────────────────────────

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, logger *slog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Info("loaded host key", "path", path)
			return signer, nil
		}
	}

	logger.Info("generating new ed25519 host key", "path", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persist for next run (non-fatal if it fails).
	if pemBlock, err := xssh.MarshalPrivateKey(key, "underground-miner server"); err == nil {
		if err := os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600); err != nil {
			logger.Warn("could not save host key", "path", path, "error", err)
		}
	}
	return signer, nil
}
