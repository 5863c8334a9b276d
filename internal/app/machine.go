// ABOUTME: Main machine application orchestration
// ABOUTME: Runs the single control loop that owns the engine and paces on output
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/padbank/padbank-go/internal/config"
	"github.com/padbank/padbank-go/internal/control"
	"github.com/padbank/padbank-go/internal/discovery"
	"github.com/padbank/padbank-go/internal/output"
	"github.com/padbank/padbank-go/pkg/catalog"
	"github.com/padbank/padbank-go/pkg/engine"
	"github.com/padbank/padbank-go/pkg/store"
)

// request is one queued control action. The loop runs fn between
// render batches so nothing touches the engine concurrently.
type request struct {
	fn   func() error
	done chan error
}

// Machine represents the drum machine application.
type Machine struct {
	config    config.Config
	store     *store.DirStore
	catalog   *catalog.DirCatalog
	engine    *engine.Engine
	sink      output.Sink
	control   *control.Server
	discovery *discovery.Manager

	reqs   chan request
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a machine from configuration. The sink is injected so
// headless and test builds can run without a sound device.
func New(cfg config.Config, sink output.Sink) (*Machine, error) {
	st, err := store.NewDirStore(cfg.Library.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}

	cat := catalog.NewDirCatalog(cfg.Library.Dir, cfg.Library.Folders)
	if err := cat.Rescan(); err != nil {
		return nil, fmt.Errorf("failed to scan library: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Machine{
		config:  cfg,
		store:   st,
		catalog: cat,
		engine:  engine.New(st, cfg.Audio.Voices, cfg.Audio.RingCapacity),
		sink:    sink,
		reqs:    make(chan request, 16),
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// Start opens the output, brings up the control surface, and starts
// the render loop.
func (m *Machine) Start() error {
	if err := m.sink.Open(m.config.Audio.SampleRate); err != nil {
		return fmt.Errorf("failed to open audio output: %w", err)
	}

	m.control = control.New(control.Config{Port: m.config.Server.Port}, m)
	if err := m.control.Start(); err != nil {
		return fmt.Errorf("failed to start control surface: %w", err)
	}

	if m.config.Server.EnableMDNS {
		m.discovery = discovery.NewManager(discovery.Config{
			ServiceName: m.config.Server.Name,
			Port:        m.config.Server.Port,
		})
		if err := m.discovery.Advertise(); err != nil {
			log.Printf("mDNS advertise failed: %v", err)
		}
	}

	go m.run()

	return nil
}

// run is the control loop. Each pass drains queued commands, renders
// one batch of frames, writes it to the sink, and tops up voice rings.
// The blocking sink write is the only pacing.
func (m *Machine) run() {
	frames := m.config.Audio.BatchFrames
	batch := make([]int16, frames*2)

	for {
		select {
		case <-m.ctx.Done():
			return
		default:
		}

		m.drain()

		for i := 0; i < frames; i++ {
			left, right := m.engine.Tick()
			batch[i*2] = left
			batch[i*2+1] = right
		}

		if err := m.sink.WriteFrames(batch); err != nil {
			log.Printf("audio output stopped: %v", err)
			m.cancel()
			return
		}

		m.engine.RefillBelow(m.config.Audio.RefillThreshold)
	}
}

// drain runs all currently queued commands without blocking.
func (m *Machine) drain() {
	for {
		select {
		case req := <-m.reqs:
			req.done <- req.fn()
		default:
			return
		}
	}
}

// do queues fn into the control loop and waits for its result.
func (m *Machine) do(fn func() error) error {
	done := make(chan error, 1)

	select {
	case m.reqs <- request{fn: fn, done: done}:
	case <-m.ctx.Done():
		return m.ctx.Err()
	}

	select {
	case err := <-done:
		return err
	case <-m.ctx.Done():
		return m.ctx.Err()
	}
}

// Trigger starts playback on a voice.
func (m *Machine) Trigger(voice int) error {
	return m.do(func() error {
		return m.engine.Trigger(voice)
	})
}

// LoadIndex binds a voice to the indexed sample of its slot folder.
func (m *Machine) LoadIndex(voice, index int) error {
	return m.do(func() error {
		ref, err := m.catalog.Resolve(voice, index)
		if err != nil {
			return err
		}
		return m.engine.Load(voice, ref)
	})
}

// LoadRef binds a voice to an asset by reference.
func (m *Machine) LoadRef(voice int, ref string) error {
	return m.do(func() error {
		return m.engine.Load(voice, ref)
	})
}

// Status reports all voice states.
func (m *Machine) Status() []engine.VoiceStatus {
	var statuses []engine.VoiceStatus
	if err := m.do(func() error {
		statuses = m.engine.Status()
		return nil
	}); err != nil {
		return nil
	}
	return statuses
}

// Samples lists the library contents by folder.
func (m *Machine) Samples() map[string][]string {
	out := make(map[string][]string)
	if err := m.do(func() error {
		for slot := 0; slot < m.catalog.Slots(); slot++ {
			out[m.catalog.Folder(slot)] = m.catalog.Samples(slot)
		}
		return nil
	}); err != nil {
		return nil
	}
	return out
}

// Rescan re-reads the library folders.
func (m *Machine) Rescan() error {
	return m.do(func() error {
		return m.catalog.Rescan()
	})
}

// SetVolume adjusts the output volume (0-100).
func (m *Machine) SetVolume(volume int) {
	m.sink.SetVolume(volume)
}

// Volume returns the output volume.
func (m *Machine) Volume() int {
	return m.sink.Volume()
}

// Config returns the machine configuration.
func (m *Machine) Config() config.Config {
	return m.config
}

// Stop shuts the machine down.
func (m *Machine) Stop() {
	m.cancel()

	if m.discovery != nil {
		m.discovery.Stop()
	}

	if m.control != nil {
		if err := m.control.Stop(); err != nil {
			log.Printf("control shutdown error: %v", err)
		}
	}

	if err := m.sink.Close(); err != nil {
		log.Printf("output close error: %v", err)
	}
}
