package pages

import (
	"context"
	"errors"
	"testing"
	"time"

	"playground-e2e/internal/domain/entity"
	"playground-e2e/internal/infrastructure/logger"
	"playground-e2e/internal/mocks"
	"playground-e2e/internal/usecase/slider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.PageLoadDelay = 0
	cfg.MessageCheck = time.Millisecond
	cfg.Slider.SettleDelay = 0
	return cfg
}

func newPlayground(b *mocks.Browser) (*Playground, *mocks.Artifacts) {
	art := &mocks.Artifacts{}
	return NewPlayground(b, art, logger.NewNop(), testConfig()), art
}

func TestGotoPlayground(t *testing.T) {
	b := mocks.NewPlayground("")
	p, _ := newPlayground(b)

	require.NoError(t, p.GotoPlayground(context.Background()))
	assert.Equal(t, []string{"Navigate", "WaitForLoadState"}, b.Methods())
	assert.Equal(t, "/selenium-playground", b.CallsTo("Navigate")[0].Arg)
}

func TestSimpleForm_SubmitEchoesMessage(t *testing.T) {
	b := mocks.NewPlayground("")
	b.Add(messageInputSelector, &mocks.Element{})
	b.Add(showInputSelector, &mocks.Element{})
	b.Add(displayedMessageSelector, &mocks.Element{Text: mocks.Text("")})
	b.SetOnClick(showInputSelector, func(b *mocks.Browser) {
		b.SetText(displayedMessageSelector, 0, b.Get(messageInputSelector, 0).Value)
	})
	p, _ := newPlayground(b)
	ctx := context.Background()

	require.NoError(t, p.SimpleForm.Goto(ctx))
	assert.Equal(t, "/simple-form-demo", b.URL)

	text, ok, err := p.SimpleForm.Submit(ctx, "Welcome to LambdaTest")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Welcome to LambdaTest", text)
}

func TestSimpleForm_GotoFailsWhenURLNeverMatches(t *testing.T) {
	b := mocks.NewPlayground("")
	b.SetOnClick(mocks.SimpleFormLink, nil)
	p, _ := newPlayground(b)

	err := p.SimpleForm.Goto(context.Background())
	assert.ErrorIs(t, err, mocks.ErrTimeout)
}

func TestSimpleForm_MissingInput(t *testing.T) {
	p, _ := newPlayground(mocks.NewPlayground(""))

	_, _, err := p.SimpleForm.Submit(context.Background(), "hi")
	assert.ErrorIs(t, err, mocks.ErrTimeout)
}

func TestSliders_DragDelegatesToSimulator(t *testing.T) {
	b := mocks.NewPlayground("")
	for i := 0; i < 3; i++ {
		b.Add(slider.DefaultSelector, &mocks.Element{
			Box:   &entity.BoundingBox{X: 0, Y: 10, Width: 100, Height: 10},
			Attrs: map[string]string{"value": "15"},
		})
	}
	p, _ := newPlayground(b)
	ctx := context.Background()

	require.NoError(t, p.Sliders.Goto(ctx))
	res, err := p.Sliders.Drag(ctx, 2, 95)
	require.NoError(t, err)
	assert.Equal(t, slider.StatusDragged, res.Status)
	assert.Len(t, b.CallsTo("MouseMove"), 21)

	r, ok := p.Sliders.Value(ctx, 2)
	require.True(t, ok)
	assert.Equal(t, slider.SourceAttribute, r.Source)
}

func formPage(b *mocks.Browser) {
	for _, sel := range []string{
		"input#name", "input#inputEmail4", "input#inputPassword4", "input#company",
		"input#websitename", "input#inputCity", "input#inputAddress1", "input#inputAddress2",
		"input#inputState", "input#inputZip",
	} {
		b.Add(sel, &mocks.Element{})
	}
	b.Add(`select[name="country"]`, &mocks.Element{})
	b.Add(`button[type="submit"]:not(#contbtn)`, &mocks.Element{})
}

func TestInputForm_FillAndSubmit(t *testing.T) {
	b := mocks.NewPlayground("")
	formPage(b)
	p, _ := newPlayground(b)
	ctx := context.Background()

	require.NoError(t, p.InputForm.Goto(ctx))
	report, err := p.InputForm.FillAndSubmit(ctx, entity.DefaultFormRecord)
	require.NoError(t, err)

	assert.Empty(t, report.Unfilled())
	assert.True(t, report.Submit.Applied())
	assert.Equal(t, "Test User", b.Get("input#name", 0).Value)
	assert.Equal(t, "10001", b.Get("input#inputZip", 0).Value)
	assert.Equal(t, "United States", b.Get(`select[name="country"]`, 0).Value)
	assert.Equal(t, `select[name="country"]`, report.Fields["country"].Selector)

	// Fill order follows the form layout.
	fills := b.CallsTo("Fill")
	require.Len(t, fills, 10)
	assert.Equal(t, "input#name", fills[0].Selector)
	assert.Equal(t, "input#websitename", fills[4].Selector)
	assert.Equal(t, "input#inputCity", fills[5].Selector)
}

func TestInputForm_FallsBackToNameAttributes(t *testing.T) {
	b := mocks.NewPlayground("")
	b.Add(`input[name="name"]`, &mocks.Element{})
	b.Add("input#inputEmail4", &mocks.Element{ActionErr: errors.New("detached")})
	b.Add(`input[name="email"]`, &mocks.Element{})
	b.Add("form button[type=\"submit\"]", &mocks.Element{})
	p, _ := newPlayground(b)

	report, err := p.InputForm.FillAndSubmit(context.Background(), entity.DefaultFormRecord)
	require.NoError(t, err)

	assert.Equal(t, `input[name="name"]`, report.Fields["name"].Selector)
	assert.Equal(t, `input[name="email"]`, report.Fields["email"].Selector)
	assert.Len(t, report.Fields["email"].ActionErrors(), 1)
	assert.Contains(t, report.Unfilled(), "password")
	assert.NotContains(t, report.Unfilled(), "name")
	assert.Equal(t, `form button[type="submit"]`, report.Submit.Selector)
}

func TestInputForm_SubmitEmptyTouchesNoField(t *testing.T) {
	b := mocks.NewPlayground("")
	formPage(b)
	p, _ := newPlayground(b)

	res := p.InputForm.SubmitEmpty(context.Background())
	assert.True(t, res.Applied())
	assert.Empty(t, b.CallsTo("Fill"))
	assert.Len(t, b.CallsTo("Click"), 1)
}

func TestInputForm_SuccessMessage(t *testing.T) {
	b := mocks.NewPlayground("")
	b.Add(".alert-success", &mocks.Element{Text: mocks.Text("Thanks for contacting us, we will get back to you shortly.")})
	p, _ := newPlayground(b)

	text, ok := p.InputForm.SuccessMessage(context.Background())
	require.True(t, ok)
	assert.Contains(t, text, "Thanks for contacting us")

	waits := b.CallsTo("WaitForSelector")
	require.Len(t, waits, 2)
	assert.Equal(t, ".success-msg", waits[0].Selector)
}

func TestInputForm_NoSuccessMessage(t *testing.T) {
	p, _ := newPlayground(mocks.NewPlayground(""))

	_, ok := p.InputForm.SuccessMessage(context.Background())
	assert.False(t, ok)
}
