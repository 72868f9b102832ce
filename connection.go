package mysql

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Connection owns a single TCP connection to a MySQL-compatible server, per
// spec.md §2/§3. It is single-use: once closed or poisoned, it is never
// reopened. Concurrent use is disallowed by design (spec.md §5) — callers
// serialize externally.
type Connection struct {
	id     uuid.UUID
	logger *zap.Logger

	netConn net.Conn
	buf     buffer

	host     string
	port     int
	database string
	user     string
	password string
	config   *Config

	serverVersion string
	capabilities  Capabilities
	salt          []byte
	connectionID  uint32

	sequence byte

	maxAllowedPacket int

	connected bool
	readOnly  bool
	poisoned  bool

	batch []string
}

// Connect dials host:port, performs the handshake of spec.md §4.3, and
// returns an authenticated Connection. On any failure the socket is closed
// before returning, per spec.md §7 "handshake failure path closes the
// socket before returning".
func Connect(cfg *Config) (*Connection, error) {
	nc, err := net.Dial("tcp", net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)))
	if err != nil {
		return nil, newTransportError(err)
	}

	mc := &Connection{
		id:               uuid.New(),
		logger:           errLogBackingLogger(),
		netConn:          nc,
		buf:              newBuffer(nc),
		host:             cfg.Host,
		port:             cfg.Port,
		database:         cfg.Database,
		user:             cfg.User,
		password:         cfg.Password,
		config:           cfg,
		maxAllowedPacket: maxPacketSize,
	}

	if err := mc.handshake(); err != nil {
		nc.Close()
		return nil, err
	}
	mc.connected = true

	if cfg.CreateDB {
		if _, err := mc.ExecuteQuery("CREATE DATABASE IF NOT EXISTS " + mc.database); err != nil {
			nc.Close()
			return nil, err
		}
		if _, err := mc.ExecuteQuery("USE " + mc.database); err != nil {
			nc.Close()
			return nil, err
		}
	}

	mc.debugf("connected")
	return mc, nil
}

// addr reports the remote address for diagnostics; never used in protocol
// logic.
func (mc *Connection) addr() string {
	if mc.netConn == nil {
		return net.JoinHostPort(mc.host, strconv.Itoa(mc.port))
	}
	return mc.netConn.RemoteAddr().String()
}

// poison marks the connection unusable, per spec.md §7: "after a poisoning
// error, all further operations on the connection return TransportError
// without I/O."
func (mc *Connection) poison() {
	mc.poisoned = true
}

func (mc *Connection) checkUsable() error {
	if mc.poisoned {
		return newTransportError(ErrInvalidConn)
	}
	if !mc.connected {
		return newTransportError(ErrInvalidConn)
	}
	return nil
}

// Close sends COM_QUIT, then tears down the socket regardless of whether
// that send succeeded, per spec.md §3 "close sends a Close command,
// drains, and tears down the socket". Both failures are reported together
// via combineErrors rather than one silently swallowing the other.
func (mc *Connection) Close() error {
	if mc.poisoned || !mc.connected {
		mc.connected = false
		if mc.netConn != nil {
			return mc.netConn.Close()
		}
		return nil
	}

	quitErr := mc.writeCommandPacket(comQuit)
	mc.connected = false
	closeErr := mc.netConn.Close()
	return combineErrors(quitErr, closeErr)
}

// IsClosed reports whether the connection is no longer usable — either
// explicitly closed or poisoned by a transport/protocol fault.
func (mc *Connection) IsClosed() bool {
	return !mc.connected || mc.poisoned
}

// Accessors, per spec.md §6 "read-only accessors for host, port, database,
// username, password, server version, read-only flag, closed state".

func (mc *Connection) Host() string           { return mc.host }
func (mc *Connection) Port() int              { return mc.port }
func (mc *Connection) Database() string       { return mc.database }
func (mc *Connection) User() string           { return mc.user }
func (mc *Connection) Password() string       { return mc.password }
func (mc *Connection) ServerVersion() string  { return mc.serverVersion }
func (mc *Connection) ReadOnly() bool         { return mc.readOnly }
func (mc *Connection) SupportsPBMS() bool     { return mc.config.EnableBlobStreaming }

// SetReadOnly marks the connection as serving a read-only replica. It is
// advisory: the core does not reject writes itself, it only exposes the
// flag for callers that route reads/writes across a topology.
func (mc *Connection) SetReadOnly(ro bool) {
	mc.readOnly = ro
}

// SetReadTimeout configures the socket read deadline applied by the
// framer's buffer; zero disables the deadline. Not part of spec.md's
// external interface but needed to make "timeouts surface as
// TransportError" (spec.md §5) configurable by the host.
func (mc *Connection) SetReadTimeout(d time.Duration) {
	mc.buf.timeout = d
}

// getDatabaseType parses the server version string to tag the server
// family, per spec.md §6. MySQL and forks (MariaDB, Percona) embed a
// marker substring; any other non-empty version is reported as "mysql",
// and only an empty version string is reported as "unknown".
func (mc *Connection) getDatabaseType() string {
	v := strings.ToLower(mc.serverVersion)
	switch {
	case strings.Contains(v, "mariadb"):
		return "mariadb"
	case strings.Contains(v, "percona"):
		return "percona"
	case v != "":
		return "mysql"
	default:
		return "unknown"
	}
}

// errLogBackingLogger exposes the zap logger backing errLog, if any, so a
// freshly constructed Connection can attach structured per-connection
// fields (spec.md §9 "Hex dump / logging ... belongs in a diagnostic
// helper, not the core contract" — the same seam is reused for connection
// lifecycle debug lines).
func errLogBackingLogger() *zap.Logger {
	if z, ok := errLog.(*zapLogger); ok {
		return z.l
	}
	return zap.NewNop()
}
