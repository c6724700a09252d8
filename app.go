package main

import (
	"context"
	"fmt"
	"omnihub/autofill"
	"omnihub/config"
	"omnihub/configsrv"
	"omnihub/constants"
	"omnihub/covers"
	"omnihub/form"
	"omnihub/gemini"
	"omnihub/launcher"
	"omnihub/library"
	"omnihub/types"
	"omnihub/view"

	"github.com/rs/zerolog"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// App struct
type App struct {
	ctx           context.Context
	log           zerolog.Logger
	configManager *config.ConfigManager
	library       *library.Service
	view          *view.State
	form          *form.Form
	autofill      *autofill.Service
	launcher      *launcher.Launcher
	covers        *covers.Service
	configSrv     *configsrv.Service
}

// NewApp creates a new App application struct and loads the library.
func NewApp(cm *config.ConfigManager, log zerolog.Logger, slots library.SlotStore) (*App, error) {
	a := &App{
		log:           log,
		configManager: cm,
		view:          view.NewState(),
		form:          form.New(),
	}

	af, err := autofill.New(gemini.NewClient(cm.GetAPIKey(), cm.GetModel()), a)
	if err != nil {
		return nil, err
	}
	a.autofill = af
	a.library = library.New(slots, a)
	a.launcher = launcher.New(a.library, a)
	a.covers = covers.New(cm, a)
	a.configSrv = configsrv.New(a, a)

	// The library is usable without a readable slot; Initialize falls back to the seed.
	if err := a.library.Initialize(context.Background()); err != nil {
		a.LogErrorf("NewApp: %v", err)
	}
	return a, nil
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	a.LogInfof("startup: %d games in library", a.library.Stats().TotalGames)
}

// shutdown is called when the window closes.
func (a *App) shutdown(ctx context.Context) {
	a.log.Info().Msg("shutting down")
}

func (a *App) context() context.Context {
	if a.ctx == nil {
		return context.Background()
	}
	return a.ctx
}

// --- Library ---

// GetLibrary returns the library as currently filtered and searched.
func (a *App) GetLibrary() types.LibraryView {
	return a.view.Build(a.library.Games(), a.library.Stats(), a.library.Today())
}

// GetFilters returns every navigation filter in display order.
func (a *App) GetFilters() []types.ViewFilter {
	return types.Filters()
}

// GetPlatforms returns the platforms a game can be added on.
func (a *App) GetPlatforms() []types.Platform {
	return types.Platforms()
}

// SetFilter changes the active filter.
func (a *App) SetFilter(filter string) (types.LibraryView, error) {
	if err := a.view.SetFilter(types.ViewFilter(filter)); err != nil {
		return a.GetLibrary(), err
	}
	return a.GetLibrary(), nil
}

// SetSearch changes the live search query.
func (a *App) SetSearch(query string) types.LibraryView {
	a.view.SetQuery(query)
	return a.GetLibrary()
}

// ResetFilters shows the whole library again.
func (a *App) ResetFilters() types.LibraryView {
	a.view.Reset()
	return a.GetLibrary()
}

// ToggleFavorite flips the favorite flag of a game.
func (a *App) ToggleFavorite(id string) (types.LibraryView, error) {
	_, _, err := a.library.ToggleFavorite(a.context(), id)
	return a.GetLibrary(), err
}

// LaunchGame plays a simulated session of a game.
func (a *App) LaunchGame(id string) (types.LibraryView, error) {
	err := a.launcher.Launch(a.context(), id)
	return a.GetLibrary(), err
}

// DeleteGame removes a game once the user confirms.
func (a *App) DeleteGame(id string) (types.LibraryView, error) {
	game, ok := a.library.Get(id)
	removed, err := a.library.Delete(a.context(), id)
	if ok && removed {
		a.covers.Evict(game.ID, game.CoverURL)
	}
	return a.GetLibrary(), err
}

// --- Add game form ---

// OpenAddForm opens an empty add-game form.
func (a *App) OpenAddForm() types.FormState {
	return a.emitForm(a.form.Open())
}

// GetAddForm returns the add-game form as it is now.
func (a *App) GetAddForm() types.FormState {
	return a.form.Snapshot()
}

// UpdateDraft stores what the user typed into the form.
func (a *App) UpdateDraft(draft types.GameDraft) (types.FormState, error) {
	return a.form.Update(draft)
}

// AutofillDraft starts a metadata lookup for the drafted title and returns
// right away with the form pending. The result arrives as a form-changed event.
func (a *App) AutofillDraft() (types.FormState, error) {
	token, title, err := a.form.BeginAutofill()
	if err != nil {
		return a.form.Snapshot(), err
	}

	go func() {
		if a.form.Run(a.context(), a.autofill, token, title) {
			a.emitForm(a.form.Snapshot())
			return
		}
		a.LogInfof("AutofillDraft: discarded result for %q, the form was closed", title)
	}()

	return a.emitForm(a.form.Snapshot()), nil
}

// ImportCoverArchive lets the user pick an archive or image and uses the
// extracted cover for the draft.
func (a *App) ImportCoverArchive() (types.FormState, error) {
	if !a.form.Snapshot().Open {
		return a.form.Snapshot(), form.ErrFormClosed
	}

	path, err := a.OpenFileDialog("Select Cover Art")
	if err != nil || path == "" {
		return a.form.Snapshot(), err
	}

	dest, err := a.covers.ImportArchive(path)
	if err != nil {
		a.LogErrorf("ImportCoverArchive: %v", err)
		return a.form.Snapshot(), err
	}

	draft := a.form.Snapshot().Draft
	draft.CoverURL = dest
	return a.form.Update(draft)
}

// SubmitAddForm adds the drafted game to the library and closes the form.
// When the game cannot be added the form stays open with the draft.
func (a *App) SubmitAddForm() (types.LibraryView, error) {
	_, err := a.form.Submit(func(draft types.GameDraft) (bool, error) {
		game, err := a.library.Add(a.context(), draft)
		return game.ID != "", err
	})
	a.emitForm(a.form.Snapshot())
	return a.GetLibrary(), err
}

// CancelAddForm closes the form and throws the draft away.
func (a *App) CancelAddForm() types.FormState {
	return a.emitForm(a.form.Cancel())
}

func (a *App) emitForm(state types.FormState) types.FormState {
	a.EventsEmit(constants.EventFormChanged, state)
	return state
}

// --- Covers ---

// GetCover returns the cover of a game as a data URI.
func (a *App) GetCover(id string, coverURL string) (string, error) {
	return a.covers.Resolve(id, coverURL)
}

// --- Settings ---

// GetConfig returns the current configuration
func (a *App) GetConfig() types.AppConfig {
	return a.configSrv.GetConfig()
}

// SaveConfig saves the configuration and swaps the autofill client when its
// key or model changed.
func (a *App) SaveConfig(cfg types.AppConfig) string {
	msg, clientChanged := a.configSrv.SaveConfig(cfg)
	if clientChanged {
		a.autofill.SetGenerator(gemini.NewClient(a.configManager.GetAPIKey(), a.configManager.GetModel()))
	}
	return msg
}

// SelectCoversDirectory asks the user where covers should be kept.
func (a *App) SelectCoversDirectory() (string, error) {
	return a.configSrv.SelectCoversDirectory()
}

// ConfigGetConfig implements configsrv.ConfigManager
func (a *App) ConfigGetConfig() types.AppConfig {
	return a.configManager.GetConfig()
}

// ConfigSave implements configsrv.ConfigManager
func (a *App) ConfigSave(cfg types.AppConfig) error {
	return a.configManager.Save(cfg)
}

// --- UI provider ---

// LogInfof logs through the Wails runtime once it is running.
func (a *App) LogInfof(format string, args ...interface{}) {
	if a.ctx == nil {
		a.log.Info().Msgf(format, args...)
		return
	}
	wailsRuntime.LogInfof(a.ctx, format, args...)
}

// LogErrorf logs through the Wails runtime once it is running.
func (a *App) LogErrorf(format string, args ...interface{}) {
	if a.ctx == nil {
		a.log.Error().Msgf(format, args...)
		return
	}
	wailsRuntime.LogErrorf(a.ctx, format, args...)
}

// EventsEmit notifies the frontend. Events before startup are dropped.
func (a *App) EventsEmit(eventName string, args ...interface{}) {
	if a.ctx == nil {
		return
	}
	wailsRuntime.EventsEmit(a.ctx, eventName, args...)
}

// Confirm shows a blocking yes/no question. Without a window the answer is no.
func (a *App) Confirm(title, message string) bool {
	if a.ctx == nil {
		return false
	}
	result, err := wailsRuntime.MessageDialog(a.ctx, wailsRuntime.MessageDialogOptions{
		Type:          wailsRuntime.QuestionDialog,
		Title:         title,
		Message:       message,
		Buttons:       []string{"Yes", "No"},
		DefaultButton: "No",
	})
	if err != nil {
		a.LogErrorf("Confirm: %v", err)
		return false
	}
	return result == "Yes"
}

// Notify shows an informational message.
func (a *App) Notify(title, message string) {
	if a.ctx == nil {
		a.log.Info().Str("title", title).Msg(message)
		return
	}
	if _, err := wailsRuntime.MessageDialog(a.ctx, wailsRuntime.MessageDialogOptions{
		Type:    wailsRuntime.InfoDialog,
		Title:   title,
		Message: message,
	}); err != nil {
		a.LogErrorf("Notify: %v", err)
	}
}

// OpenFileDialog asks the user for a cover image or archive.
func (a *App) OpenFileDialog(title string) (string, error) {
	if a.ctx == nil {
		return "", fmt.Errorf("no window to show %q in", title)
	}
	return wailsRuntime.OpenFileDialog(a.ctx, wailsRuntime.OpenDialogOptions{
		Title: title,
		Filters: []wailsRuntime.FileFilter{
			{DisplayName: "Cover art (*.zip;*.7z;*.rar;*.png;*.jpg)", Pattern: "*.zip;*.7z;*.rar;*.png;*.jpg;*.jpeg;*.webp"},
		},
	})
}

// OpenDirectoryDialog implements configsrv.UIProvider
func (a *App) OpenDirectoryDialog(title string) (string, error) {
	if a.ctx == nil {
		return "", fmt.Errorf("no window to show %q in", title)
	}
	return wailsRuntime.OpenDirectoryDialog(a.ctx, wailsRuntime.OpenDialogOptions{
		Title: title,
	})
}
