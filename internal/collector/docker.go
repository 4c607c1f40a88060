package collector

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"

	"connwatch/internal/stats"
)

// DockerSource treats each running container as one monitored connection,
// using the Docker stats API for per-container metrics.
type DockerSource struct {
	client *client.Client

	// Previous CPU readings per container for delta calculation.
	prevCPU map[string]cpuPrev
}

type cpuPrev struct {
	containerCPU uint64
	systemCPU    uint64
}

// NewDockerSource creates a source using the given Docker socket path.
func NewDockerSource(socket string) (*DockerSource, error) {
	c, err := client.NewClientWithOpts(
		client.WithHost("unix://"+socket),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("docker client: %w", err)
	}
	return &DockerSource{
		client:  c,
		prevCPU: make(map[string]cpuPrev),
	}, nil
}

func (d *DockerSource) Name() string { return "docker" }

func (d *DockerSource) Close() error { return d.client.Close() }

// Poll lists running containers and collects stats for each.
func (d *DockerSource) Poll(ctx context.Context) ([]stats.ConnectionStats, error) {
	containers, err := d.client.ContainerList(ctx, container.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("container list: %w", err)
	}

	var conns []stats.ConnectionStats
	for _, c := range containers {
		name := containerName(c.Names)
		conn, err := d.containerStats(ctx, c.ID, name, c.Image, c.State)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			slog.Warn("failed to get container stats", "container", name, "error", err)
			continue
		}
		conns = append(conns, conn)
	}
	return conns, nil
}

func (d *DockerSource) containerStats(ctx context.Context, id, name, image, state string) (stats.ConnectionStats, error) {
	resp, err := d.client.ContainerStatsOneShot(ctx, id)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var st container.StatsResponse
	if err := json.Unmarshal(body, &st); err != nil {
		return nil, err
	}

	memUsage, memLimit := calcMemUsage(&st)
	netRx, netTx := calcNetIO(&st)

	return stats.ConnectionStats{
		"id":          stats.Text(id[:min(12, len(id))]),
		"name":        stats.Text(name),
		"image":       stats.Text(image),
		"state":       stats.Text(state),
		"cpu.percent": stats.Number(d.calcCPUPercent(id, &st)),
		"mem.usage":   stats.Number(float64(memUsage)),
		"mem.limit":   stats.Number(float64(memLimit)),
		"net.rx":      stats.Number(float64(netRx)),
		"net.tx":      stats.Number(float64(netTx)),
		"pids":        stats.Number(float64(st.PidsStats.Current)),
	}, nil
}

// calcCPUPercent computes CPU percent from delta, same formula as `docker stats`.
func (d *DockerSource) calcCPUPercent(id string, st *container.StatsResponse) float64 {
	cpuTotal := st.CPUStats.CPUUsage.TotalUsage
	systemCPU := st.CPUStats.SystemUsage

	prev, hasPrev := d.prevCPU[id]
	d.prevCPU[id] = cpuPrev{containerCPU: cpuTotal, systemCPU: systemCPU}

	if !hasPrev {
		prev = cpuPrev{
			containerCPU: st.PreCPUStats.CPUUsage.TotalUsage,
			systemCPU:    st.PreCPUStats.SystemUsage,
		}
	}
	return calcCPUPercentDelta(prev.containerCPU, cpuTotal, prev.systemCPU, systemCPU, st.CPUStats.OnlineCPUs)
}

// calcCPUPercentDelta computes CPU percent from counter deltas.
// Returns 0 if counters have reset (e.g. container restart).
func calcCPUPercentDelta(prevContainer, curContainer, prevSystem, curSystem uint64, onlineCPUs uint32) float64 {
	if curContainer < prevContainer || curSystem < prevSystem {
		return 0
	}

	containerDelta := float64(curContainer - prevContainer)
	systemDelta := float64(curSystem - prevSystem)
	if systemDelta <= 0 || containerDelta <= 0 {
		return 0
	}

	cpus := float64(onlineCPUs)
	if cpus == 0 {
		cpus = 1
	}
	return (containerDelta / systemDelta) * cpus * 100
}

// calcMemUsage returns memory usage and limit, subtracting inactive file
// cache the way `docker stats` does (cgroup v1 and v2 report it differently).
func calcMemUsage(st *container.StatsResponse) (usage, limit uint64) {
	limit = st.MemoryStats.Limit
	usage = st.MemoryStats.Usage

	if v, ok := st.MemoryStats.Stats["inactive_file"]; ok && v > 0 {
		if usage > v {
			usage -= v
		}
	} else if v, ok := st.MemoryStats.Stats["total_inactive_file"]; ok && v > 0 {
		if usage > v {
			usage -= v
		}
	}
	return
}

// calcNetIO sums rx/tx bytes across all container network interfaces.
func calcNetIO(st *container.StatsResponse) (rx, tx uint64) {
	for _, n := range st.Networks {
		rx += n.RxBytes
		tx += n.TxBytes
	}
	return
}

// containerName extracts a clean name from Docker's name list.
func containerName(names []string) string {
	if len(names) == 0 {
		return ""
	}
	// Docker prefixes names with "/", strip it.
	name := names[0]
	if len(name) > 0 && name[0] == '/' {
		name = name[1:]
	}
	return name
}
