package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/framewidget/internal/control"
)

func TestSnapshotFromSingleField(t *testing.T) {
	s := SnapshotFrom(control.Parameters{
		PropURLValue:         "https://example.com/page",
		PropQueryStringName:  "q",
		PropQueryStringValue: "term",
	})

	assert.Equal(t, []string{"https://example.com/page"}, s.URLFragments)
	assert.Equal(t, "https://example.com/page?q=term", s.Address())
}

func TestSnapshotFromMultiField(t *testing.T) {
	s := SnapshotFrom(control.Parameters{
		PropURLValue: "ignored",
		PropURLPart1: "https://example.com/",
		PropURLPart3: "index.html",
	})

	assert.Equal(t, []string{"https://example.com/", "", "index.html"}, s.URLFragments)
	assert.Equal(t, "https://example.com/index.html", s.Address())
}

func TestSnapshotFromNullPartsKeepsSingleField(t *testing.T) {
	s := SnapshotFrom(control.Parameters{
		PropURLValue: "https://legacy.example",
		PropURLPart1: nil,
		PropURLPart2: "",
		PropURLPart3: nil,
	})

	assert.Equal(t, []string{"https://legacy.example"}, s.URLFragments)
	assert.Equal(t, "https://legacy.example", s.Address())
}

func TestSnapshotFromEmptyParameters(t *testing.T) {
	s := SnapshotFrom(nil)

	assert.Empty(t, s.URLFragments)
	assert.Equal(t, "", s.Address())
	assert.Nil(t, s.Height)
	assert.Nil(t, s.Width)
	assert.True(t, s.NewTabEnabled())
	assert.True(t, s.ExpandEnabled())
}

func TestSnapshotDimensions(t *testing.T) {
	s := SnapshotFrom(control.Parameters{PropHeight: "480", PropWidth: float64(720)})
	require.NotNil(t, s.Height)
	require.NotNil(t, s.Width)
	assert.Equal(t, 480, *s.Height)
	assert.Equal(t, 720, *s.Width)

	s = SnapshotFrom(control.Parameters{PropHeight: "tall", PropWidth: 0})
	assert.Nil(t, s.Height, "non-numeric height is absent")
	assert.Nil(t, s.Width, "zero width is absent")

	s = SnapshotFrom(control.Parameters{PropHeight: -5})
	assert.Nil(t, s.Height)
}

func TestSnapshotToggles(t *testing.T) {
	s := SnapshotFrom(control.Parameters{
		PropEnableOpenInNewTab: false,
		PropEnableOpenFullPage: "true",
	})
	assert.False(t, s.NewTabEnabled())
	assert.True(t, s.ExpandEnabled())

	s = SnapshotFrom(control.Parameters{PropEnableOpenFullPage: "sometimes"})
	assert.Nil(t, s.EnableExpand)
	assert.True(t, s.ExpandEnabled())
}

// Masked and Disabled are carried through but the address is still composed.
// Suppressing the address for secured fields is not implemented.
func TestSnapshotSecurityFlagsDoNotSuppressAddress(t *testing.T) {
	s := SnapshotFrom(control.Parameters{
		PropURLValue: "https://secret.example.com",
		PropMasked:   true,
		PropDisabled: true,
	})

	assert.True(t, s.Masked)
	assert.True(t, s.Disabled)
	assert.Equal(t, "https://secret.example.com", s.Address())
}
