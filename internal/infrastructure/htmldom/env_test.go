package htmldom_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/adshield/internal/application/port"
	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/filtering"
	"github.com/bnema/adshield/internal/infrastructure/htmldom"
	"github.com/bnema/adshield/internal/infrastructure/loop"
)

const page = `<!doctype html><html><head><title>t</title></head>
<body><div id="main" class="content wide"><p>Hello <b>world</b></p></div>
<div id="slot" style="width: 728px; height: 90px"></div></body></html>`

type fetchLog struct{ urls []string }

func (l *fetchLog) load(_ port.Element, rawURL string) error {
	l.urls = append(l.urls, rawURL)
	return nil
}

func newEnv(t *testing.T, src string, opts ...htmldom.Option) (*htmldom.Env, *loop.Virtual, *fetchLog) {
	t.Helper()
	sched := loop.NewVirtual(time.Unix(0, 0))
	log := &fetchLog{}
	env, err := htmldom.ParseString(src, sched, append([]htmldom.Option{htmldom.WithLoader(log.load)}, opts...)...)
	require.NoError(t, err)
	return env, sched, log
}

func TestDocument_Basics(t *testing.T) {
	env, _, _ := newEnv(t, page)
	doc := env.Document()

	assert.Equal(t, "HTML", doc.DocumentElement().TagName())
	assert.Equal(t, "HEAD", doc.Head().TagName())
	assert.Equal(t, "BODY", doc.Body().TagName())
	assert.Equal(t, entity.ReadyStateComplete, doc.ReadyState())

	main, err := doc.QuerySelector("#main")
	require.NoError(t, err)
	require.NotNil(t, main)
	assert.True(t, main.HasClass("wide"))
	assert.Equal(t, "Hello world", main.TextContent())

	again, err := doc.QuerySelector("div.content")
	require.NoError(t, err)
	assert.Same(t, main.(*htmldom.Element), again.(*htmldom.Element), "one wrapper per node")

	missing, err := doc.QuerySelector(".nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = doc.QuerySelectorAll("div[")
	assert.Error(t, err)

	ok, err := main.Matches("body > div:has(b)")
	require.NoError(t, err)
	assert.True(t, ok)

	inner, err := main.QuerySelectorAll("*")
	require.NoError(t, err)
	assert.Len(t, inner, 2, "query excludes the element itself")
}

func TestStyle_RoundTrip(t *testing.T) {
	env, _, _ := newEnv(t, page)
	slot, err := env.Document().QuerySelector("#slot")
	require.NoError(t, err)

	st := slot.Style()
	assert.Equal(t, "728px", st.Property("width"))
	st.SetProperty("display", "none", "important")
	st.SetProperty("width", "0", "important")

	assert.Equal(t, "none", st.Property("display"))
	assert.Equal(t, "important", st.Priority("display"))
	assert.Equal(t, "", st.Priority("height"))
	style, _ := slot.Attr("style")
	assert.Equal(t, "width: 0 !important; height: 90px; display: none !important", style)

	st.SetProperty("height", "", "")
	assert.Equal(t, "", st.Property("height"))
}

func TestRectAndVisibility(t *testing.T) {
	env, _, _ := newEnv(t, page+`<img id="i" width="300" height="250">`)
	doc := env.Document()

	slot, _ := doc.QuerySelector("#slot")
	assert.Equal(t, entity.Rect{Width: 728, Height: 90}, slot.Rect())
	assert.True(t, slot.Visible())

	img, _ := doc.QuerySelector("#i")
	assert.Equal(t, entity.Rect{Width: 300, Height: 250}, img.Rect())

	slot.(*htmldom.Element).SetRect(entity.Rect{X: 5, Y: 6, Width: 1, Height: 1})
	assert.Equal(t, entity.Rect{X: 5, Y: 6, Width: 728, Height: 90}, slot.Rect())

	doc.Body().Style().SetProperty("display", "none", "")
	assert.False(t, slot.Visible(), "hidden ancestors hide descendants")
	assert.True(t, slot.Rect().Empty())
}

func TestSetProperty_HookChain(t *testing.T) {
	env, sched, log := newEnv(t, page)
	doc := env.Document()

	var order []string
	restoreA, err := env.InterceptProperty("IMG", "src", func(el port.Element, v string, commit func(string) error) error {
		order = append(order, "a")
		return commit(v)
	})
	require.NoError(t, err)
	_, err = env.InterceptProperty("img", "SRC", func(el port.Element, v string, commit func(string) error) error {
		order = append(order, "b")
		if v == "drop" {
			return nil
		}
		return commit(v + "?b")
	})
	require.NoError(t, err)

	img := doc.CreateElement("img")
	require.NoError(t, img.SetProperty("src", "https://x.test/a.png"))
	assert.Equal(t, []string{"b", "a"}, order, "latest hook runs outermost")
	assert.Equal(t, "https://x.test/a.png?b", img.Property("src"))

	require.NoError(t, img.SetProperty("src", "drop"))
	assert.Equal(t, "https://x.test/a.png?b", img.Property("src"))

	restoreA()
	order = nil
	require.NoError(t, img.SetProperty("src", "https://x.test/c.png"))
	assert.Equal(t, []string{"b"}, order)

	sched.RunPending()
	assert.Equal(t, []string{"https://x.test/c.png?b"}, log.urls, "detached images still load their latest src")
}

func TestInterceptProperty_Frozen(t *testing.T) {
	env, _, _ := newEnv(t, page, htmldom.WithFrozenProperty("SCRIPT", "src"))
	_, err := env.InterceptProperty("script", "src", func(port.Element, string, func(string) error) error { return nil })
	assert.ErrorIs(t, err, filtering.ErrNotConfigurable)
}

func TestInsertion_HooksAndLoads(t *testing.T) {
	env, sched, log := newEnv(t, page)
	doc := env.Document()
	body := doc.Body().(*htmldom.Element)

	var seen []string
	_, err := env.InterceptInsertion(func(parent, child port.Element, insert func() (port.Element, error)) (port.Element, error) {
		seen = append(seen, parent.TagName()+">"+child.TagName())
		_ = child.SetAttr("type", "text/blocked")
		return insert()
	})
	require.NoError(t, err)

	script := doc.CreateElement("script")
	require.NoError(t, script.SetAttr("src", "https://t.test/a.js"))
	got, err := body.AppendChild(script)
	require.NoError(t, err)
	assert.Same(t, script.(*htmldom.Element), got.(*htmldom.Element))
	assert.True(t, script.Connected())

	sched.RunPending()
	assert.Equal(t, []string{"BODY>SCRIPT"}, seen)
	assert.Empty(t, log.urls, "non-script types never load")

	img := doc.CreateElement("img")
	main, _ := doc.QuerySelector("#main")
	_, err = body.InsertBefore(img, main)
	require.NoError(t, err)
	assert.Equal(t, "IMG", body.Children()[0].TagName())
	assert.Equal(t, []string{"BODY>SCRIPT", "BODY>IMG"}, seen)

	_, err = body.InsertBefore(doc.CreateElement("span"), doc.CreateElement("b"))
	assert.Error(t, err)
}

func TestObserver_RunsBeforeLoads(t *testing.T) {
	env, sched, log := newEnv(t, page)
	doc := env.Document()
	main, _ := doc.QuerySelector("#main")

	var batches [][]port.MutationRecord
	disconnect, err := env.Observe(doc.DocumentElement(), port.ObserveOptions{ChildList: true, Subtree: true}, func(records []port.MutationRecord) {
		batches = append(batches, records)
		for _, rec := range records {
			for _, el := range rec.Added {
				scripts, _ := el.QuerySelectorAll("script")
				for _, s := range scripts {
					_ = s.SetAttr("type", "text/blocked")
					_ = s.RemoveAttr("src")
				}
			}
		}
	})
	require.NoError(t, err)

	require.NoError(t, main.(*htmldom.Element).SetInnerHTML(`<section><script src="https://t.test/x.js"></script><img src="https://c.test/ok.png"></section>`))
	assert.Empty(t, batches, "records are delivered on a later task")

	sched.RunPending()
	require.Len(t, batches, 1)
	assert.Equal(t, port.MutationChildList, batches[0][0].Type)
	assert.Equal(t, []string{"https://c.test/ok.png"}, log.urls)

	disconnect()
	require.NoError(t, main.(*htmldom.Element).SetInnerHTML(`<p>x</p>`))
	sched.RunPending()
	assert.Len(t, batches, 1)
}

func TestObserver_AttributeFilter(t *testing.T) {
	env, sched, _ := newEnv(t, page)
	main, _ := env.Document().QuerySelector("#main")

	var names []string
	_, err := env.Observe(main, port.ObserveOptions{Attributes: true, AttributeFilter: []string{"class"}}, func(records []port.MutationRecord) {
		for _, r := range records {
			names = append(names, r.AttributeName)
		}
	})
	require.NoError(t, err)

	require.NoError(t, main.SetAttr("class", "ad-showing"))
	require.NoError(t, main.SetAttr("data-x", "1"))
	main.Style().SetProperty("color", "red", "")
	sched.RunPending()
	assert.Equal(t, []string{"class"}, names)
}

func TestEventsAndMethods(t *testing.T) {
	env, _, _ := newEnv(t, page)
	btn := env.Document().CreateElement("button").(*htmldom.Element)

	clicks := 0
	btn.AddEventListener("click", func() { clicks++ })
	btn.AddEventListener("click", func() { panic("page bug") })
	require.NoError(t, btn.Click())
	assert.Equal(t, 1, clicks)

	_, err := btn.Call("skipAd")
	assert.ErrorIs(t, err, port.ErrNoMethod)

	btn.DefineMethod("skipAd", func(args ...any) (any, error) { return len(args), nil })
	out, err := btn.Call("skipAd", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, out)
}

func TestMedia(t *testing.T) {
	env, _, _ := newEnv(t, page+`<video id="v"></video>`, htmldom.WithMaxPlaybackRate(8))
	doc := env.Document()

	div, _ := doc.QuerySelector("#main")
	_, ok := div.Media()
	assert.False(t, ok)

	v, _ := doc.QuerySelector("#v")
	m, ok := v.Media()
	require.True(t, ok)
	assert.True(t, math.IsNaN(m.Duration()))
	assert.Equal(t, 1.0, m.PlaybackRate())

	err := m.SetPlaybackRate(16)
	assert.True(t, errors.Is(err, htmldom.ErrRateNotSupported))
	require.NoError(t, m.SetPlaybackRate(8))

	state, _ := v.(*htmldom.Element).MediaState()
	state.SetDuration(30)
	require.NoError(t, m.SetCurrentTime(99))
	assert.Equal(t, 30.0, m.CurrentTime())
	assert.Error(t, m.SetVolume(2))
	assert.True(t, m.Paused())
	require.NoError(t, m.Play())
	assert.False(t, m.Paused())
}

func TestReadyState(t *testing.T) {
	env, _, _ := newEnv(t, page, htmldom.WithReadyState(entity.ReadyStateLoading))
	doc := env.Document()

	ran := 0
	doc.OnReady(func() { ran++ })
	assert.Equal(t, 0, ran)

	env.SetReadyState(entity.ReadyStateInteractive)
	assert.Equal(t, 1, ran)
	env.SetReadyState(entity.ReadyStateComplete)
	assert.Equal(t, 1, ran)

	doc.OnReady(func() { ran++ })
	assert.Equal(t, 2, ran)
}

func TestRender(t *testing.T) {
	env, _, _ := newEnv(t, page)
	slot, _ := env.Document().QuerySelector("#slot")
	slot.Style().SetProperty("display", "none", "important")

	out, err := env.HTML()
	require.NoError(t, err)
	assert.Contains(t, out, `display: none !important`)
	assert.Contains(t, out, `<p>Hello <b>world</b></p>`)
}
