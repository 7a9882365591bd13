package countermeasure

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/adshield/internal/application/port"
	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/filtering/rules"
)

var baitStyle = [][2]string{
	{"position", "absolute"},
	{"left", "-9999px"},
	{"top", "-9999px"},
	{"width", "1px"},
	{"height", "1px"},
	{"opacity", "0.01"},
	{"pointer-events", "none"},
}

// Installer defines stubs in a page realm and plants bait elements on
// generic sites.
type Installer struct {
	registry *Registry
	classes  []string
	logger   zerolog.Logger

	mu    sync.Mutex
	baits map[port.Element]struct{}
}

// InstallerOption configures an Installer.
type InstallerOption func(*Installer)

// WithBaitClasses overrides the decoy classes planted on generic sites.
func WithBaitClasses(classes []string) InstallerOption {
	return func(i *Installer) { i.classes = append([]string(nil), classes...) }
}

// NewInstaller creates an installer for registry.
func NewInstaller(registry *Registry, logger zerolog.Logger, opts ...InstallerOption) *Installer {
	i := &Installer{
		registry: registry,
		classes:  rules.BaitClasses,
		logger:   logger.With().Str("component", "countermeasure").Logger(),
		baits:    make(map[port.Element]struct{}),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Install defines every stub applying to site in realm, then schedules
// bait insertion once doc is ready. Either realm or doc may be nil. A
// stub that fails to install does not stop the others; the failures are
// returned joined.
func (i *Installer) Install(realm port.Realm, doc port.Document, site entity.SiteContext) error {
	var errs []error
	if realm != nil {
		installed := 0
		for _, stub := range i.registry.Stubs(site) {
			if err := realm.Define(stub); err != nil {
				i.logger.Debug().Err(err).Str("stub", stub.Name).Msg("stub not installed")
				errs = append(errs, fmt.Errorf("%s: %w", stub.Name, err))
				continue
			}
			installed++
		}
		i.logger.Debug().Int("stubs", installed).Str("host", site.Hostname).Msg("countermeasures installed")
	}

	if doc != nil && !site.IsSpecialSite {
		doc.OnReady(func() { i.plantBaits(doc) })
	}
	return errors.Join(errs...)
}

func (i *Installer) plantBaits(doc port.Document) {
	defer func() {
		if r := recover(); r != nil {
			i.logger.Debug().Interface("panic", r).Msg("bait insertion aborted")
		}
	}()

	body := doc.Body()
	if body == nil {
		return
	}
	for _, class := range i.classes {
		if existing, err := doc.QuerySelector("#" + class); err == nil && existing != nil && i.IsBait(existing) {
			continue
		}
		el := doc.CreateElement("div")
		if err := el.SetAttr("class", class); err != nil {
			i.logger.Debug().Err(err).Str("class", class).Msg("bait not created")
			continue
		}
		if err := el.SetAttr("id", class); err != nil {
			i.logger.Debug().Err(err).Str("class", class).Msg("bait not created")
			continue
		}
		if err := el.SetAttr(rules.BaitAttribute, ""); err != nil {
			i.logger.Debug().Err(err).Str("class", class).Msg("bait not created")
			continue
		}
		style := el.Style()
		for _, decl := range baitStyle {
			style.SetProperty(decl[0], decl[1], "important")
		}
		el.SetTextContent(" ")

		// Marked before insertion so mutation observers already see bait.
		i.mu.Lock()
		i.baits[el] = struct{}{}
		i.mu.Unlock()

		if _, err := body.AppendChild(el); err != nil {
			i.logger.Debug().Err(err).Str("class", class).Msg("bait not inserted")
			i.mu.Lock()
			delete(i.baits, el)
			i.mu.Unlock()
		}
	}
}

// IsBait reports whether el was planted by this installer.
func (i *Installer) IsBait(el port.Element) bool {
	if el == nil {
		return false
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	_, ok := i.baits[el]
	return ok
}

// Baits returns the number of planted bait elements.
func (i *Installer) Baits() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.baits)
}
