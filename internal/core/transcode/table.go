package transcode

import "github.com/artpar/decomposer/internal/core/document"

// =============================================================================
// Mapping Table
// =============================================================================

var (
	rmFlags      = ParseFlags("rm")
	detachFlags  = ParseFlags("detach/d")
	networkFlags = ParseFlags("network/net")
)

// catalog is ordered: within one service key, options are emitted in this order.
var catalog = []Mapping{
	entry("add-host", TypeArray, "extra_hosts"),
	entry("blkio-weight", TypeIntValue, "blkio_config/weight"),
	entry("blkio-weight-device", TypeDeviceWeight, "blkio_config/weight_device"),
	entry("cap-add", TypeArray, "cap_add"),
	entry("cap-drop", TypeArray, "cap_drop"),
	entry("cgroup-parent", TypeValue, "cgroup_parent"),
	entry("cgroupns", TypeValue, "cgroup"),
	entry("cpu-period", TypeValue, "cpu_period"),
	entry("cpu-quota", TypeValue, "cpu_quota"),
	entry("cpu-rt-period", TypeValue, "cpu_rt_period"),
	entry("cpu-rt-runtime", TypeValue, "cpu_rt_runtime"),
	entry("cpu-shares/c", TypeIntValue, "cpu_shares"),
	entry("cpus", TypeFloatValue, "deploy/resources/limits/cpus"),
	{Flags: detachFlags, Type: TypeSwitch},
	entry("device-cgroup-rule", TypeArray, "device_cgroup_rules"),
	entry("device-read-bps", TypeDeviceRate, "blkio_config/device_read_bps"),
	entry("device-read-iops", TypeDeviceRate, "blkio_config/device_read_iops"),
	entry("device-write-bps", TypeDeviceRate, "blkio_config/device_write_bps"),
	entry("device-write-iops", TypeDeviceRate, "blkio_config/device_write_iops"),
	entry("device", TypeArray, "devices"),
	entry("dns-opt", TypeArray, "dns_opt"),
	entry("dns-search", TypeArray, "dns_search"),
	entry("dns", TypeArray, "dns"),
	entry("domainname", TypeValue, "domainname"),
	entry("entrypoint", TypeArray, "entrypoint"),
	entry("env-file", TypeArray, "env_file"),
	entry("env/e", TypeArray, "environment"),
	entry("expose", TypeArray, "expose"),
	{
		Flags: ParseFlags("gpus"),
		Type:  TypeValue,
		Path:  document.ParsePath("deploy/resources/reservations/devices/:first:/count"),
		Gate:  GatePresent,
	},
	entry("group-add", TypeArray, "group_add"),
	entry("health-cmd", TypeValue, "healthcheck/test"),
	entry("health-interval", TypeValue, "healthcheck/interval"),
	entry("health-retries", TypeValue, "healthcheck/retries"),
	entry("health-start-period", TypeValue, "healthcheck/start_period"),
	entry("health-timeout", TypeValue, "healthcheck/timeout"),
	entry("hostname/h", TypeValue, "hostname"),
	entry("init", TypeSwitch, "init"),
	entry("interactive/i", TypeSwitch, "stdin_open"),
	entry("ip6", TypeValue, "networks/:first:/ipv6_address"),
	entry("ip", TypeValue, "networks/:first:/ipv4_address"),
	entry("ipc", TypeValue, "ipc"),
	entry("isolation", TypeValue, "isolation"),
	entry("label/l", TypeArray, "labels"),
	entry("link-local-ip", TypeArray, "networks/:first:/link_local_ips"),
	entry("link", TypeArray, "links"),
	entry("log-driver", TypeArray, "logging/driver"),
	entry("log-opt", TypeMap, "logging/options"),
	entry("mac-address", TypeValue, "mac_address"),
	entry("memory-reservation", TypeValue, "deploy/resources/reservations/memory"),
	entry("memory-swap", TypeValue, "memswap_limit"),
	entry("memory-swappiness", TypeValue, "mem_swappiness"),
	entry("memory/m", TypeValue, "deploy/resources/limits/memory"),
	entry("mount", TypeMapArray, "volumes"),
	entry("name", TypeValue, "container_name"),
	entry("network-alias/net-alias", TypeArray, "networks/:first:/aliases"),
	entry("no-healthcheck", TypeSwitch, "healthcheck/disable"),
	entry("oom-kill-disable", TypeSwitch, "oom_kill_disable"),
	entry("oom-score-adj", TypeValue, "oom_score_adj"),
	entry("pid", TypeValue, "pid"),
	entry("pids-limit", TypeIntValue, "deploy/resources/limits/pids"),
	entry("platform", TypeValue, "platform"),
	entry("privileged", TypeSwitch, "privileged"),
	entry("publish/p", TypeArray, "ports"),
	entry("pull", TypeValue, "pull_policy"),
	entry("read-only", TypeSwitch, "read_only"),
	entry("restart", TypeValue, "restart"),
	{Flags: rmFlags, Type: TypeSwitch},
	entry("runtime", TypeValue, "runtime"),
	entry("security-opt", TypeArray, "security_opt"),
	entry("shm-size", TypeValue, "shm_size"),
	entry("stop-signal", TypeValue, "stop_signal"),
	entry("stop-timeout", TypeValue, "stop_grace_period"),
	entry("storage-opt", TypeMap, "storage_opt"),
	entry("sysctl", TypeArray, "sysctls"),
	entry("tmpfs", TypeValue, "tmpfs"),
	entry("tty/t", TypeSwitch, "tty"),
	entry("ulimit", TypeUlimits, "ulimits"),
	entry("user/u", TypeValue, "user"),
	entry("userns", TypeValue, "userns_mode"),
	entry("uts", TypeValue, "uts"),
	entry("volume/v", TypeArray, "volumes"),
	entry("volumes-from", TypeArray, "volumes_from"),
	entry("workdir/w", TypeValue, "working_dir"),
}

// byRoot groups the catalog by the first path key, keeping catalog order.
var byRoot = indexCatalog(catalog)

func entry(flags string, t ValueType, path string) Mapping {
	return Mapping{Flags: ParseFlags(flags), Type: t, Path: document.ParsePath(path)}
}

func indexCatalog(entries []Mapping) map[string][]Mapping {
	idx := make(map[string][]Mapping)
	for _, m := range entries {
		if len(m.Path) == 0 || m.Path[0].First {
			continue
		}
		root := m.Path[0].Key
		idx[root] = append(idx[root], m)
	}
	return idx
}
