package loco

// stubBackend logs every intent instead of encoding it for the wire.
type stubBackend struct {
	name      string
	component string
	logger    Logger
	url       string
	connected bool
}

func (b *stubBackend) Name() string { return b.name }

func (b *stubBackend) Connect(connectionURL string) error {
	b.url = connectionURL
	b.connected = true
	if connectionURL == "" {
		b.infof("connect: no connection url configured")
		return nil
	}
	b.infof("connect %s", connectionURL)
	return nil
}

func (b *stubBackend) Disconnect() error {
	if b.connected {
		b.infof("disconnect %s", b.url)
	}
	b.connected = false
	return nil
}

func (b *stubBackend) SendCommand(command string) error {
	b.infof("command %q", command)
	return nil
}

func (b *stubBackend) SendSpeed(speed int) error {
	b.infof("speed %d%%", speed)
	return nil
}

func (b *stubBackend) SendBrake(brake int) error {
	b.infof("brake %d%%", brake)
	return nil
}

func (b *stubBackend) SendFrontLights(status LightStatus) error {
	b.infof("front lights %s", status)
	return nil
}

func (b *stubBackend) SendBackLights(status LightStatus) error {
	b.infof("back lights %s", status)
	return nil
}

func (b *stubBackend) SendBell(active bool) error {
	b.infof("bell %t", active)
	return nil
}

func (b *stubBackend) SendHorn(active bool) error {
	b.infof("horn %t", active)
	return nil
}

func (b *stubBackend) infof(format string, args ...interface{}) {
	if b.logger != nil {
		b.logger.Infof(b.component, format, args...)
	}
}

// DccEx targets a DCC-EX command station.
type DccEx struct{ stubBackend }

func NewDccEx(logger Logger) *DccEx {
	return &DccEx{stubBackend{name: "DCC-EX", component: "dccex", logger: logger}}
}

// JMRI targets a JMRI server.
type JMRI struct{ stubBackend }

func NewJMRI(logger Logger) *JMRI {
	return &JMRI{stubBackend{name: "JMRI", component: "jmri", logger: logger}}
}
