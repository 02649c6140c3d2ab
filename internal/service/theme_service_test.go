package service

import (
	"errors"
	"testing"

	"backoffice/internal/model"
	"backoffice/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newThemeService(t *testing.T) (ThemeService, *store.Collection[model.Theme]) {
	t.Helper()
	dir := t.TempDir()
	themes := store.NewCollection[model.Theme](dir, store.CollectionThemes)
	audit := NewAuditService(store.NewCollection[model.AuditEntry](dir, store.CollectionAudit), nil)
	return NewThemeService(themes, audit), themes
}

func TestActivateThemeIsExclusive(t *testing.T) {
	svc, themes := newThemeService(t)

	dark, err := svc.CreateTheme(SaveThemeRequest{Name: "Dark", Colors: map[string]string{"bg": "#111"}}, adminActor)
	require.NoError(t, err)
	light, err := svc.CreateTheme(SaveThemeRequest{Name: "Light", Colors: map[string]string{"bg": "#fff"}}, adminActor)
	require.NoError(t, err)

	_, err = svc.ActivateTheme(dark.ID, adminActor)
	require.NoError(t, err)

	got, err := svc.ActivateTheme(light.ID, adminActor)
	require.NoError(t, err)
	assert.True(t, got.IsActive)

	active := 0
	for _, th := range themes.Scan() {
		if th.IsActive {
			active++
			assert.Equal(t, light.ID, th.ID)
		}
	}
	assert.Equal(t, 1, active, "exactly one theme may be active")
}

func TestActivateUnknownTheme(t *testing.T) {
	svc, _ := newThemeService(t)

	_, err := svc.ActivateTheme("nope", adminActor)
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestDeleteActiveThemeRejected(t *testing.T) {
	svc, themes := newThemeService(t)

	th, err := svc.CreateTheme(SaveThemeRequest{Name: "Dark", Colors: map[string]string{"bg": "#111"}}, adminActor)
	require.NoError(t, err)
	_, err = svc.ActivateTheme(th.ID, adminActor)
	require.NoError(t, err)

	err = svc.DeleteTheme(th.ID, adminActor)
	require.Error(t, err)
	assert.Len(t, themes.Scan(), 1)
}

func TestDeleteInactiveTheme(t *testing.T) {
	svc, themes := newThemeService(t)

	th, err := svc.CreateTheme(SaveThemeRequest{Name: "Dark", Colors: map[string]string{"bg": "#111"}}, adminActor)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTheme(th.ID, adminActor))
	assert.Empty(t, themes.Scan())
}

func TestUpdateThemeReplacesColors(t *testing.T) {
	svc, _ := newThemeService(t)

	th, err := svc.CreateTheme(SaveThemeRequest{Name: "Dark", Colors: map[string]string{"bg": "#111", "fg": "#eee"}}, adminActor)
	require.NoError(t, err)

	got, err := svc.UpdateTheme(th.ID, SaveThemeRequest{Name: "Darker", Colors: map[string]string{"bg": "#000"}}, adminActor)
	require.NoError(t, err)
	assert.Equal(t, "Darker", got.Name)
	assert.Equal(t, map[string]string{"bg": "#000"}, got.Colors, "colors are replaced wholesale, not merged")
}
