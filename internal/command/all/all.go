// Package all registers every shell command.
package all

import (
	_ "github.com/keshon/minigit/internal/command/add"
	_ "github.com/keshon/minigit/internal/command/branch"
	_ "github.com/keshon/minigit/internal/command/checkout"
	_ "github.com/keshon/minigit/internal/command/commit"
	_ "github.com/keshon/minigit/internal/command/diff"
	_ "github.com/keshon/minigit/internal/command/export"
	_ "github.com/keshon/minigit/internal/command/help"
	_ "github.com/keshon/minigit/internal/command/history"
	_ "github.com/keshon/minigit/internal/command/init"
	_ "github.com/keshon/minigit/internal/command/log"
	_ "github.com/keshon/minigit/internal/command/merge"
	_ "github.com/keshon/minigit/internal/command/redo"
	_ "github.com/keshon/minigit/internal/command/repo"
	_ "github.com/keshon/minigit/internal/command/reset"
	_ "github.com/keshon/minigit/internal/command/revert"
	_ "github.com/keshon/minigit/internal/command/status"
	_ "github.com/keshon/minigit/internal/command/undo"
)
