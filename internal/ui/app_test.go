package ui

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/LoadPlan/internal/model"
)

func TestStatusText(t *testing.T) {
	s := model.LoadStatus{
		Instances: 3, RequestedBoxes: 5,
		TotalWeightKg: 30000, MaxWeightKg: 28000, WeightPercent: 107.1,
		TotalVolumeM3: 12.5, MaxVolumeM3: 33.2, VolumePercent: 37.7,
		Overweight: true,
	}
	text := statusText(s)
	assert.Contains(t, text, "Boxes: 3/5")
	assert.Contains(t, text, "30000 / 28000 kg")
	assert.Contains(t, text, "OVERWEIGHT")
	assert.NotContains(t, text, "OVER VOLUME")
}

func TestCargoForm_Spec(t *testing.T) {
	test.NewTempApp(t)

	f := newCargoForm(model.CargoSpec{Name: "Pallet", Qty: 4, Length: 1200, Width: 800, Height: 1000, Weight: 350.5})
	assert.Equal(t, "1200", f.length.Text)
	assert.Equal(t, "350.5", f.weight.Text)

	f.height.SetText("1000,0")
	spec, err := f.spec()
	require.NoError(t, err)
	assert.Equal(t, model.CargoSpec{Name: "Pallet", Qty: 4, Length: 1200, Width: 800, Height: 1000, Weight: 350.5}, spec)

	f.qty.SetText("two")
	_, err = f.spec()
	assert.True(t, errors.Is(err, model.ErrValidation))

	f.qty.SetText("2")
	f.width.SetText("")
	_, err = f.spec()
	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "width", verr.Field)
}

func TestCargoForm_EmptySpecLeavesDimensionsBlank(t *testing.T) {
	test.NewTempApp(t)
	f := newCargoForm(model.CargoSpec{Name: "Cargo 1", Qty: 1})
	assert.Empty(t, f.length.Text)
	assert.Equal(t, "1", f.qty.Text)
}

func TestValidateSettings(t *testing.T) {
	assert.NoError(t, validateSettings(model.DefaultSettings()))

	zeroGap := model.DefaultSettings()
	zeroGap.Gap = 0
	assert.NoError(t, validateSettings(zeroGap))

	cases := map[string]func(*model.Settings){
		"gap":                func(s *model.Settings) { s.Gap = -1 },
		"scale":              func(s *model.Settings) { s.Scale = 0 },
		"front_scale_factor": func(s *model.Settings) { s.FrontScaleFactor = -2 },
		"margin":             func(s *model.Settings) { s.Margin = -5 },
		"limits":             func(s *model.Settings) { s.MaxWeightKg = -1 },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			s := model.DefaultSettings()
			mutate(&s)
			err := validateSettings(s)
			var verr *model.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, field, verr.Field)
		})
	}
}

func TestLoadPlanTheme_Variant(t *testing.T) {
	dark := NewLoadPlanTheme("dark")
	light := NewLoadPlanTheme("light")
	system := NewLoadPlanTheme("system")

	bg := theme.ColorNameBackground
	assert.Equal(t, theme.DefaultTheme().Color(bg, theme.VariantDark), dark.Color(bg, theme.VariantLight))
	assert.Equal(t, theme.DefaultTheme().Color(bg, theme.VariantLight), light.Color(bg, theme.VariantDark))
	assert.Equal(t, theme.DefaultTheme().Color(bg, theme.VariantLight), system.Color(bg, theme.VariantLight))
	assert.Equal(t, float32(12), system.Size(theme.SizeNameText))
}
