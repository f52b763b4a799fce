// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package server owns the listening socket and the http.Server that
// serves it.
package server

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"
)

// DefaultPort is used when no port is configured.
const DefaultPort = 8080

// Config holds configuration data used when creating a Server with New.
type Config struct {
	// Port to listen on, on all interfaces. Zero picks a free port.
	Port int
	// Handler answers every request.
	Handler http.Handler
	// ReadTimeout bounds reading a request. Zero means no timeout.
	ReadTimeout time.Duration
}

// A Server binds Config.Port and serves Config.Handler until the process
// exits.
type Server struct {
	srv *http.Server
	ln  net.Listener
}

// ListenAddr returns the all-interfaces listen address for port.
func ListenAddr(port int) string {
	return net.JoinHostPort("", strconv.Itoa(port))
}

// Listen binds the listening socket.
func (s *Server) Listen() error {
	if s.ln != nil {
		return errors.New("server is already listening")
	}
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("could not listen on %s: %w", s.srv.Addr, err)
	}
	s.ln = ln
	return nil
}

// Port returns the bound port, or 0 before Listen.
func (s *Server) Port() int {
	if s.ln == nil {
		return 0
	}
	if addr, ok := s.ln.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}

// Serve accepts connections on the bound socket, each on its own
// goroutine. It only returns on error.
func (s *Server) Serve() error {
	if s.ln == nil {
		return errors.New("server is not listening")
	}
	return s.srv.Serve(s.ln)
}

// ListenAndServe binds and then serves.
func (s *Server) ListenAndServe() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Close drops the listener and any open connections immediately.
func (s *Server) Close() error {
	return s.srv.Close()
}

// New returns a new Server. Returns an error if the config is unusable.
func New(config Config) (*Server, error) {
	if config.Port < 0 || config.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", config.Port)
	}
	if config.Handler == nil {
		return nil, errors.New("no handler configured")
	}

	return &Server{
		srv: &http.Server{
			Addr:        ListenAddr(config.Port),
			Handler:     config.Handler,
			ReadTimeout: config.ReadTimeout,
		},
	}, nil
}
