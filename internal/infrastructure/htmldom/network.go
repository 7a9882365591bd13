package htmldom

import "github.com/bnema/adshield/internal/application/port"

// Network holds a page's swappable network primitives.
type Network struct {
	fetcher port.Fetcher
	xhr     port.XHRFactory
	beacon  port.Beacon
	opener  port.Opener
}

var _ port.NetworkEnv = (*Network)(nil)

// NewNetwork creates a network environment. Nil primitives are absent.
func NewNetwork(fetcher port.Fetcher, xhr port.XHRFactory, beacon port.Beacon, opener port.Opener) *Network {
	return &Network{fetcher: fetcher, xhr: xhr, beacon: beacon, opener: opener}
}

// Fetcher implements port.NetworkEnv.
func (n *Network) Fetcher() port.Fetcher { return n.fetcher }

// SetFetcher implements port.NetworkEnv.
func (n *Network) SetFetcher(f port.Fetcher) { n.fetcher = f }

// XHRFactory implements port.NetworkEnv.
func (n *Network) XHRFactory() port.XHRFactory { return n.xhr }

// SetXHRFactory implements port.NetworkEnv.
func (n *Network) SetXHRFactory(f port.XHRFactory) { n.xhr = f }

// Beacon implements port.NetworkEnv.
func (n *Network) Beacon() port.Beacon { return n.beacon }

// SetBeacon implements port.NetworkEnv.
func (n *Network) SetBeacon(b port.Beacon) { n.beacon = b }

// Opener implements port.NetworkEnv.
func (n *Network) Opener() port.Opener { return n.opener }

// SetOpener implements port.NetworkEnv.
func (n *Network) SetOpener(o port.Opener) { n.opener = o }
