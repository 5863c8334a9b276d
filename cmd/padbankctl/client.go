// ABOUTME: Control surface client for padbankctl
// ABOUTME: Resolves a machine via flag or mDNS and exchanges protocol messages
package main

import (
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/padbank/padbank-go/internal/discovery"
	"github.com/padbank/padbank-go/internal/protocol"
)

const discoverTimeout = 5 * time.Second

// resolveServer returns the machine address, browsing mDNS when no
// address was given.
func resolveServer(addr string) (string, error) {
	if addr != "" {
		return addr, nil
	}

	mgr := discovery.NewManager(discovery.Config{})
	defer mgr.Stop()

	if err := mgr.Browse(); err != nil {
		return "", fmt.Errorf("discovery failed: %w", err)
	}

	select {
	case machine := <-mgr.Machines():
		return fmt.Sprintf("%s:%d", machine.Host, machine.Port), nil
	case <-time.After(discoverTimeout):
		return "", fmt.Errorf("no machine found after %s (use --server)", discoverTimeout)
	}
}

// send connects to the machine, issues one command, and returns the
// reply. Error replies come back as errors.
func send(addr string, cmd protocol.Command) (protocol.Reply, error) {
	resolved, err := resolveServer(addr)
	if err != nil {
		return protocol.Reply{}, err
	}

	url := fmt.Sprintf("ws://%s/padbank", resolved)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return protocol.Reply{}, fmt.Errorf("failed to connect to %s: %w", resolved, err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(cmd); err != nil {
		return protocol.Reply{}, fmt.Errorf("failed to send command: %w", err)
	}

	var reply protocol.Reply
	if err := conn.ReadJSON(&reply); err != nil {
		return protocol.Reply{}, fmt.Errorf("failed to read reply: %w", err)
	}

	if reply.Type == protocol.ReplyError {
		return reply, fmt.Errorf("machine: %s", reply.Error)
	}
	return reply, nil
}
