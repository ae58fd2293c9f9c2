// Package ui contains the Bubble Tea program that browses the asset catalog.
// The package is structured so the Model type focuses on message orchestration,
// while dedicated helpers own navigation, input, rendering, and state updates.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Each tea.Msg is
//     routed through a typed handler registry so it is handled by a focused
//     function (key presses, mouse wheel, window size, catalog loads,
//     debounce tokens, detail fetches, reveal results, backend events).
//   - Key presses go to the focused pane: the card grid, the folder tree, the
//     facet sections, or the search prompt (internal/ui/input.go).
//   - Query edits and window resizes are debounced. A debounce.Channel hands
//     out a token per change and the token is delivered back as debounceMsg;
//     only the newest token fires, so a burst of keystrokes runs the filter
//     pipeline once.
//
// State ownership:
//   - filter.State holds the facets, folder prefix, query and sort order and is
//     the single input of filter.Apply.
//   - grid.Controller owns the viewport, scroll offset and the pool of card
//     nodes; the view composes whatever it placed.
//   - Sidebar sections live in internal/ui/state.Level and the folder tree in
//     folder.Navigator.
//   - The loaded catalog lives in internal/state and is replaced wholesale by
//     the dispatcher on every successful load.
//
// Effects:
//   - Catalog loads, detail fetches and directory reveals run as tea.Cmd
//     values through the internal/ui/command bus and come back as messages.
//   - A backend.Watcher polls the catalog fingerprint; a change triggers a
//     full reload.
package ui
