package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/liftrunner/internal/draw"
)

// titleArt is the figlet "small" rendering of the game name.
var titleArt = []string{
	" _    ___ ___ _____   ___ _   _ _  _ _  _ ___ ___ ",
	"| |  |_ _| __|_   _| | _ \\ | | | \\| | \\| | __| _ \\",
	"| |__ | || _|  | |   |   / |_| | .` | .` | _||   /",
	"|____|___|_|   |_|   |_|_\\\\___/|_|\\_|_|\\_|___|_|_\\",
}

var gameOverArt = []string{
	"  ___   _   __  __ ___    _____   _____ ___ ",
	" / __| /_\\ |  \\/  | __|  / _ \\ \\ / / __| _ \\",
	"| (_ |/ _ \\| |\\/| | _|  | (_) \\ V /| _||   /",
	" \\___/_/ \\_\\_|  |_|___|  \\___/ \\_/ |___|_|_\\",
}

var controlLines = []string{
	"< > / A D  . . . . . . Drive",
	"^ v / W S  . . . Change lane",
	"L / E  . . . . . . Take lift",
	"SPACE  . . . . . . . . . Jump",
	"T / X (hold) . . . . . Turbo",
	"P  . . . . . . . . . . Pause",
	"Q  . . . . . . . . . . . Quit",
}

// blinkOn toggles at a fixed rate for prompts.
func blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

func writeArt(cw *draw.ChunkWriter, centerX, top int, art []string) {
	width := 0
	for _, line := range art {
		width = max(width, len(line))
	}
	for i, line := range art {
		cw.WriteAt(centerX-width/2, top+i, line)
	}
}

// drawStartScreen draws the title screen.
func drawStartScreen(cw *draw.ChunkWriter, centerX, centerY, best int) {
	titleStartY := centerY - 9
	writeArt(cw, centerX, titleStartY, titleArt)

	subtitle := "~ dodge traffic, ride the lifts ~"
	cw.WriteCentered(centerX, titleStartY+len(titleArt)+1, subtitle)

	controlsY := titleStartY + len(titleArt) + 3
	for i, line := range controlLines {
		cw.WriteCentered(centerX, controlsY+i, line)
	}

	if best > 0 {
		cw.WriteCentered(centerX, controlsY+len(controlLines)+1, fmt.Sprintf("Best: %d", best))
	}

	if blinkOn() {
		cw.WriteCentered(centerX, controlsY+len(controlLines)+3, ">>  Press ENTER to Start  <<")
	}
}

// drawDeadScreen draws the run-ended overlay.
func drawDeadScreen(cw *draw.ChunkWriter, centerX, centerY int, snap *Snapshot) {
	top := centerY - 6
	cw.WriteString(draw.Bold())
	writeArt(cw, centerX, top, gameOverArt)
	cw.WriteString(draw.Reset())

	sess := snap.Session
	y := top + len(gameOverArt) + 1
	if sess.EndCause != "" {
		cw.WriteCentered(centerX, y, fmt.Sprintf("(%s)", sess.EndCause))
	}
	cw.WriteCentered(centerX, y+2, fmt.Sprintf("Score: %-7d Best: %-7d", sess.Score, sess.Best))
	cw.WriteCentered(centerX, y+3, fmt.Sprintf("Overtakes: %-4d Stage: %s", sess.Overtakes, snap.StageName))

	if blinkOn() {
		cw.WriteCentered(centerX, y+5, ">>  Press R or ENTER to Restart  <<")
	}
}

// drawPauseScreen draws the paused overlay.
func drawPauseScreen(cw *draw.ChunkWriter, centerX, centerY int) {
	cw.WriteStyledAt(centerX-3, centerY-1, draw.Bold(), "PAUSED")
	cw.WriteCentered(centerX, centerY+1, "Press P to resume")
}

// drawInactivityScreen draws the inactivity warning screen.
func drawInactivityScreen(cw *draw.ChunkWriter, centerX, centerY int, secondsLeft int) {
	cw.WriteCentered(centerX, centerY-2, "INACTIVITY WARNING")

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		max(secondsLeft, 0),
	)
	cw.WriteCentered(centerX, centerY, msg)
	cw.WriteCentered(centerX, centerY+2, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notification screen.
func drawShutdownScreen(cw *draw.ChunkWriter, centerX, centerY int, remaining float64) {
	cw.WriteCentered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	cw.WriteCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	cw.WriteCentered(centerX, centerY, "Please reconnect in a moment.")

	countdown := fmt.Sprintf("Disconnecting in %d seconds...", int(remaining)+1)
	cw.WriteCentered(centerX, centerY+2, countdown)
	cw.WriteCentered(centerX, centerY+4, "Press Q to disconnect now")
}
