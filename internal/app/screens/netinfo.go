package screens

import (
	"context"
	"fmt"
	"image"

	"github.com/rook-computer/locopad/internal/buttons"
	"github.com/rook-computer/locopad/internal/render"
	"github.com/rook-computer/locopad/internal/render/layout"
	"github.com/rook-computer/locopad/internal/system"
	"github.com/rook-computer/locopad/internal/ui"
)

const (
	wifiInterface = "wlan0"
	qrSizePx      = 96
)

// NetworkInfo lists the device addresses and shows a QR code for the
// address a phone should open.
type NetworkInfo struct {
	Lines []string
	URL   string

	deps *Deps
	qr   image.Image
	done bool
}

func (deps *Deps) macAddress(iface string) (string, error) {
	if deps.MACAddress != nil {
		return deps.MACAddress(iface)
	}
	return system.MACAddress(iface)
}

// gatherNetworkInfo collects what the page shows. Lookup failures show up
// as "-" rather than failing the page.
func gatherNetworkInfo(ctx context.Context, deps *Deps) *NetworkInfo {
	value := func(what string, v string, err error) string {
		if err != nil {
			deps.errorf("netinfo %s failed: %v", what, err)
			return "-"
		}
		if v == "" {
			return "-"
		}
		return v
	}

	wifiIP, err := system.WiFiIPv4(ctx, deps.Runner)
	wifiIPText := value("wifi-ip", wifiIP, err)
	ssid, err := system.WiFiSSID(ctx, deps.Runner)
	ssidText := value("ssid", ssid, err)
	ethernetIP, err := system.EthernetIPv4(ctx, deps.Runner)
	ethernetText := value("ethernet-ip", ethernetIP, err)
	mac, err := deps.macAddress(wifiInterface)
	macText := value("mac", mac, err)

	page := &NetworkInfo{
		deps: deps,
		Lines: []string{
			"SSID: " + ssidText,
			"WiFi IP: " + wifiIPText,
			"Ethernet: " + ethernetText,
			"MAC: " + macText,
		},
	}
	ip := wifiIP
	if ip == "" {
		ip = ethernetIP
	}
	if ip != "" {
		page.URL = fmt.Sprintf("http://%s/", ip)
	}
	page.qr, err = render.GenerateQRCodeImage(page.URL, qrSizePx)
	if err != nil {
		deps.errorf("qr code: %v", err)
	}
	return page
}

// ShowNetworkInfo gathers the network details behind a spinner and then
// pushes the info page.
func ShowNetworkInfo(deps *Deps) {
	var page *NetworkInfo
	deps.background("Reading network...", func(ctx context.Context) error {
		page = gatherNetworkInfo(ctx, deps)
		return nil
	}, func(error) {
		deps.Stack.Push(page)
	})
}

func (p *NetworkInfo) Draw(d *render.Display) {
	d.Do(func(s render.Surface) {
		w, h := s.Size()
		s.FillScreen(render.Black)
		s.DrawText("Network info", w/2, 3, render.TextStyle{Color: render.Cyan, Size: render.FontSmall, Align: render.TextAlignCenter})

		y := 24
		for _, line := range p.Lines {
			m := s.DrawText(line, 8, y, render.TextStyle{Color: render.White, Size: render.FontSmall})
			y += m.LineHeight + 2
		}
		_, bottom := layout.SplitHorizontal(image.Rect(0, 0, w, h), y)
		if p.qr != nil {
			size := min(qrSizePx, layout.FitSquare(layout.Inset(bottom, 8)).Dx())
			box := layout.Centered(bottom, size, size)
			s.FillRect(box.Inset(-4), render.White)
			s.DrawImage(p.qr, box, render.ScaleModeFit)
		} else if p.URL == "" {
			s.DrawText("No connection", w/2, bottom.Min.Y+bottom.Dy()/2, render.TextStyle{Color: render.Yellow, Align: render.TextAlignCenter})
		}
	})
}

func (p *NetworkInfo) HandleInput(keys buttons.Keys) {
	if p.done || !keys.Has(buttons.OK|buttons.Left) {
		return
	}
	p.done = true
	p.deps.Stack.Clock().Sleep(ui.InputDebounce)
	p.deps.Stack.Pop()
}
