// Package identity derives the addressing keys a transport uses for this host:
// a stable device UUID, the device name and the station id.
package identity

import (
	"context"
	"strings"
	"sync"

	"codeberg.org/mutker/pcadapter/internal/errors"
	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v3/host"
)

// DeviceUUID returns the version 5 (SHA-1, DNS namespace) UUID of a host name.
// Names are compared case-insensitively, so the input is trimmed and lowered.
func DeviceUUID(hostName string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(normalize(hostName)))
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Identity is immutable after construction. The UUID is computed on first use.
type Identity struct {
	name    string
	station string
	uuid    func() uuid.UUID
}

// New builds an Identity for the given device name and station id.
func New(name, station string) *Identity {
	return &Identity{
		name:    name,
		station: station,
		uuid: sync.OnceValue(func() uuid.UUID {
			return DeviceUUID(name)
		}),
	}
}

func (i *Identity) Name() string {
	return i.name
}

func (i *Identity) StationID() string {
	return i.station
}

func (i *Identity) UUID() uuid.UUID {
	return i.uuid()
}

// HostInfoFunc returns the host name and a stable host id.
type HostInfoFunc func(ctx context.Context) (hostName, hostID string, err error)

// GopsutilHostInfo reads the host name and host id through gopsutil.
func GopsutilHostInfo(ctx context.Context) (string, string, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return "", "", err
	}

	return info.Hostname, info.HostID, nil
}

// Resolve fills in an empty device name or station id from the host. Values
// that are already configured are kept as is.
func Resolve(ctx context.Context, name, station string, lookup HostInfoFunc) (*Identity, error) {
	errFactory := errors.New()

	if name != "" && station != "" {
		return New(name, station), nil
	}

	if lookup == nil {
		lookup = GopsutilHostInfo
	}

	hostName, hostID, err := lookup(ctx)
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrResolveHost, err)
	}

	if name == "" {
		name = hostName
	}
	if station == "" {
		station = hostID
	}
	if station == "" {
		station = name
	}

	if name == "" {
		return nil, errFactory.WithMessage(errors.ErrResolveHost, "host name is empty")
	}

	return New(name, station), nil
}
