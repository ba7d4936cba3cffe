package workers

import (
	"context"
	"liftotron/domain"
	"liftotron/observability"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// SnapshotProvider exposes the current attendance state.
type SnapshotProvider interface {
	Snapshot() domain.Snapshot
}

// HeartbeatWorker periodically logs the process health and the size of the day's attendance.
type HeartbeatWorker struct {
	log      *slog.Logger
	tracker  SnapshotProvider
	interval time.Duration
}

func NewHeartbeatWorker(log *slog.Logger, tracker SnapshotProvider, interval time.Duration) *HeartbeatWorker {
	return &HeartbeatWorker{log: log, tracker: tracker, interval: interval}
}

func (w *HeartbeatWorker) Run(ctx context.Context) error {
	w.log.Info("Starting heartbeat worker", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.beat(p)
		}
	}
}

func (w *HeartbeatWorker) beat(p *process.Process) {
	snapshot := w.tracker.Snapshot()
	observability.ObserveAttendance(len(snapshot.Roster), len(snapshot.Greeted))

	rss, cpu, status, err := getSelfStats(p)
	if err != nil {
		w.log.Error("Failed to collect self stats", "err", err)
		return
	}
	observability.ObserveProcess(rss, cpu)

	w.log.Info("Heartbeat",
		"pid", p.Pid,
		"status", status,
		"rss_bytes", rss,
		"cpu_percent", cpu,
		"roster", len(snapshot.Roster),
		"greeted", len(snapshot.Greeted),
		"missing", len(snapshot.Missing),
	)
}

// getSelfStats retrieves memory, CPU and OS status for the given process.
func getSelfStats(p *process.Process) (uint64, float64, string, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, "", err
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, "", err
	}

	status, err := p.Status()
	if err != nil {
		return 0, 0, "", err
	}
	return memInfo.RSS, cpuPercent, status, nil
}
