package source

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// cpuFreq reads current per-core clock speeds in MHz.
//
// It tries cpufreq's scaling_cur_freq for every core, then the "cpu MHz"
// lines of /proc/cpuinfo, then the static speeds read at startup. gopsutil's
// cpu.Info reports cpuinfo_max_freq when cpufreq is present, so it can't
// serve as the live reading.
type cpuFreq struct {
	sys      fs.FS // rooted at /sys
	proc     fs.FS // rooted at /proc
	fallback []uint64
}

func newCPUFreq(fallback []uint64) *cpuFreq {
	return &cpuFreq{
		sys:      os.DirFS(hostPath("HOST_SYS", "/sys")),
		proc:     os.DirFS(hostPath("HOST_PROC", "/proc")),
		fallback: fallback,
	}
}

// hostPath honours the same overrides gopsutil does for containerised hosts.
func hostPath(env, def string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

// read returns one speed per core for n cores.
func (f *cpuFreq) read(n int) []uint64 {
	if mhz, ok := f.scalingCur(n); ok {
		return mhz
	}
	if mhz := f.procCPUInfo(); len(mhz) > 0 {
		return spread(mhz, n)
	}
	return spread(f.fallback, n)
}

func (f *cpuFreq) scalingCur(n int) ([]uint64, bool) {
	if n < 1 || f.sys == nil {
		return nil, false
	}
	out := make([]uint64, n)
	for i := range n {
		raw, err := fs.ReadFile(f.sys, fmt.Sprintf("devices/system/cpu/cpu%d/cpufreq/scaling_cur_freq", i))
		if err != nil {
			return nil, false
		}
		khz, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 10, 64)
		if err != nil {
			return nil, false
		}
		out[i] = khz / 1000
	}
	return out, true
}

func (f *cpuFreq) procCPUInfo() []uint64 {
	if f.proc == nil {
		return nil
	}
	raw, err := fs.ReadFile(f.proc, "cpuinfo")
	if err != nil {
		return nil
	}

	var out []uint64
	sc := bufio.NewScanner(bytes.NewReader(raw))
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok || strings.TrimSpace(key) != "cpu MHz" {
			continue
		}
		mhz, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || mhz < 0 {
			continue
		}
		out = append(out, uint64(mhz))
	}
	return out
}

// spread repeats vals across n cores. No values gives zeros.
func spread(vals []uint64, n int) []uint64 {
	out := make([]uint64, max(n, 0))
	if len(vals) == 0 {
		return out
	}
	for i := range out {
		out[i] = vals[i%len(vals)]
	}
	return out
}
