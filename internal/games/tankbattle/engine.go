package tankbattle

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tankbattle/internal/config"
	"github.com/vovakirdan/tui-tankbattle/internal/core"
	"github.com/vovakirdan/tui-tankbattle/internal/games/tankbattle/stages"
)

// Terminal reasons.
const (
	ReasonBaseDestroyed    = "base destroyed"
	ReasonPlayersDestroyed = "all players destroyed"
	ReasonFrameLimit       = "frame limit reached"
)

const (
	explosionFrames = 3
	spawnAttempts   = 64
	logEvery        = 60
)

// Scores holds the episode score split by player.
type Scores struct {
	Total int
	P1    int
	P2    int
}

// Engine is the simulation state of one arena. It is not safe for
// concurrent use.
type Engine struct {
	cfg        config.TankBattleConfig
	stage      *stages.Stage
	rng        *rand.Rand
	difficulty *config.DifficultyManager
	log        *log.Logger
	debug      bool

	world   World
	frame   int
	score   int
	scoreP1 int
	scoreP2 int
	rewards [2]rewardQueue

	player1 EntityID
	player2 EntityID
	pending [2]Action

	baseDestroyed bool
	terminal      bool
	reason        string
}

// NewEngine creates an engine with an empty arena. Call Reset before ticking.
// A nil stage leaves the arena without interior walls; a nil logger discards
// debug output.
func NewEngine(cfg config.TankBattleConfig, stage *stages.Stage, seed int64, logger *log.Logger, debug bool) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	queue := max(1, cfg.Engine.RewardQueueSize)
	return &Engine{
		cfg:        cfg,
		stage:      stage,
		rng:        rand.New(rand.NewSource(seed)),
		difficulty: config.NewDifficultyManager(cfg.Difficulty, cfg.Engine),
		log:        logger,
		debug:      debug,
		rewards:    [2]rewardQueue{newRewardQueue(queue), newRewardQueue(queue)},
		pending:    [2]Action{ActionNone, ActionNone},
	}
}

// Reset clears the arena, rebuilds the layout and runs one tick.
// The random stream is not reseeded.
func (e *Engine) Reset() {
	if e.debug && e.frame > 0 {
		e.log.Info("episode reset",
			"frames", e.frame,
			"total", e.score,
			"p1", e.scoreP1,
			"p2", e.scoreP2,
			"reason", e.reason,
		)
	}

	e.world.Reset()
	e.frame = 0
	e.score, e.scoreP1, e.scoreP2 = 0, 0, 0
	e.rewards[SidePlayer1].clear()
	e.rewards[SidePlayer2].clear()
	e.pending = [2]Action{ActionNone, ActionNone}
	e.baseDestroyed = false
	e.terminal = false
	e.reason = ""

	e.buildArena()
	e.Tick()
}

// Queue sets the action a player tank performs on the next tick.
func (e *Engine) Queue(side Side, a Action) {
	if side.IsPlayer() {
		e.pending[side] = a
	}
}

// Tick advances the simulation by one frame. It does nothing once the
// episode is terminal.
func (e *Engine) Tick() {
	if e.terminal {
		return
	}

	e.applyActions()
	e.animate()
	e.runEnemies()
	e.resolveCollisions()
	e.removeFinishedExplosions()
	e.world.Compact()

	e.frame++
	e.updateTerminal()
	e.logFrame()
}

// applyActions executes the queued player actions once.
func (e *Engine) applyActions() {
	for k, id := range [2]EntityID{e.player1, e.player2} {
		a := e.pending[k]
		e.pending[k] = ActionNone
		if a == ActionNone {
			continue
		}
		i, ok := e.world.Find(id)
		if !ok {
			continue
		}
		if a == ActionFire {
			e.fire(i)
		} else {
			e.tryMove(i, a)
		}
	}
}

func (e *Engine) updateTerminal() {
	switch {
	case e.baseDestroyed:
		e.setTerminal(ReasonBaseDestroyed)
	case e.world.Count(isPlayer) == 0:
		e.setTerminal(ReasonPlayersDestroyed)
	case e.cfg.Episode.MaxFrames > 0 && e.frame > e.cfg.Episode.MaxFrames:
		e.setTerminal(ReasonFrameLimit)
	}
}

// setTerminal ends the episode. The first reason wins.
func (e *Engine) setTerminal(reason string) {
	if e.terminal {
		return
	}
	e.terminal = true
	e.reason = reason
}

func (e *Engine) logFrame() {
	if !e.debug || e.frame%logEvery != 0 {
		return
	}
	e.log.Debug("tick",
		"frame", e.frame,
		"player_bullets", e.world.Count(isPlayerBullet),
		"enemy_bullets", e.world.Count(isEnemyBullet),
		"p1", e.scoreP1,
		"p2", e.scoreP2,
		"total", e.score,
		"players_left", e.world.Count(isPlayer),
	)
}

// buildArena places border walls, the base, players, stage walls and enemies.
func (e *Engine) buildArena() {
	n := e.cfg.Engine.MapTiles

	e.addBlock(KindBase, core.Point{X: n / 2, Y: n - 2}, WallHard)
	for i := range n {
		e.addBlock(KindWall, core.Point{X: i, Y: 0}, WallHard)
		e.addBlock(KindWall, core.Point{X: i, Y: n - 1}, WallHard)
		if i > 0 && i < n-1 {
			e.addBlock(KindWall, core.Point{X: 0, Y: i}, WallHard)
			e.addBlock(KindWall, core.Point{X: n - 1, Y: i}, WallHard)
		}
	}

	eng := e.cfg.Engine
	e.player1 = e.addTank(core.Point{X: n/2 - 2, Y: n - 2}, DirUp, SidePlayer1, eng.PlayerSpeed, eng.PlayerLoadingTime)
	e.player2 = 0
	if e.cfg.Episode.TwoPlayers {
		e.player2 = e.addTank(core.Point{X: n/2 + 2, Y: n - 2}, DirUp, SidePlayer2, eng.PlayerSpeed, eng.PlayerLoadingTime)
	}

	if e.stage != nil {
		for _, c := range e.stage.Walls() {
			kind, ok := wallKindFromTile(c.Tile)
			if !ok {
				continue
			}
			e.addBlock(KindWall, core.Point{X: c.X, Y: c.Y}, kind)
		}
	}

	for range e.cfg.Episode.NumOfEnemies {
		e.spawnEnemy()
	}
}

func (e *Engine) addBlock(kind Kind, cell core.Point, wall WallKind) EntityID {
	tile := e.cfg.Engine.TileSize
	return e.world.Add(Entity{
		Kind:   kind,
		Cell:   cell,
		Target: cell,
		Pixel:  cell.Scale(tile),
		Size:   tile,
		Wall:   wall,
	})
}

func (e *Engine) addTank(cell core.Point, dir Direction, side Side, speed, loading int) EntityID {
	tile := e.cfg.Engine.TileSize
	return e.world.Add(Entity{
		Kind:        KindTank,
		Cell:        cell,
		Target:      cell,
		Pixel:       cell.Scale(tile),
		Size:        tile,
		Dir:         dir,
		Side:        side,
		Speed:       speed,
		LoadingTime: loading,
	})
}

func (e *Engine) spawnExplosion(pixel core.Point) {
	e.world.Add(Entity{
		Kind:  KindExplosion,
		Pixel: pixel,
		Size:  e.cfg.Engine.TileSize,
	})
}

// spawnEnemy adds one enemy in the upper part of the arena. Its stats come
// from the difficulty table at the current score.
func (e *Engine) spawnEnemy() bool {
	cell, ok := e.freeSpawnCell()
	if !ok {
		e.log.Warn("no free cell for enemy", "frame", e.frame)
		return false
	}
	stats := e.EnemyStats()
	dir := Direction(e.rng.Intn(4))
	e.addTank(cell, dir, SideEnemy, stats.Speed, stats.LoadingTime)
	return true
}

// freeSpawnCell draws random cells with x in [1, n-1) and y in [1, n/2-1),
// then falls back to a row-major scan of the same area.
func (e *Engine) freeSpawnCell() (core.Point, bool) {
	n := e.cfg.Engine.MapTiles
	maxY := n/2 - 1
	if maxY <= 1 {
		return core.Point{}, false
	}

	for range spawnAttempts {
		p := core.Point{X: 1 + e.rng.Intn(n-2), Y: 1 + e.rng.Intn(maxY-1)}
		if !e.world.Occupied(p, 0) {
			return p, true
		}
	}
	for y := 1; y < maxY; y++ {
		for x := 1; x < n-1; x++ {
			p := core.Point{X: x, Y: y}
			if !e.world.Occupied(p, 0) {
				return p, true
			}
		}
	}
	return core.Point{}, false
}

// Frame returns the number of ticks since reset.
func (e *Engine) Frame() int {
	return e.frame
}

// Score returns the episode score.
func (e *Engine) Score() Scores {
	return Scores{Total: e.score, P1: e.scoreP1, P2: e.scoreP2}
}

// IsTerminal reports whether the episode has ended.
func (e *Engine) IsTerminal() bool {
	return e.terminal
}

// Reason describes why the episode ended, or is empty.
func (e *Engine) Reason() string {
	return e.reason
}

// Player returns a copy of a player's tank, or false if it is destroyed
// or not in play.
func (e *Engine) Player(side Side) (Entity, bool) {
	id := e.player1
	if side == SidePlayer2 {
		id = e.player2
	}
	if ent := e.world.Get(id); ent != nil {
		return *ent, true
	}
	return Entity{}, false
}

// PlayerID returns the entity ID of a player's tank, or 0.
func (e *Engine) PlayerID(side Side) EntityID {
	if side == SidePlayer2 {
		return e.player2
	}
	return e.player1
}

// Entities returns a copy of every live entity.
func (e *Engine) Entities() []Entity {
	return e.world.Snapshot()
}

// EnemyStats returns the stats a newly spawned enemy would get now.
func (e *Engine) EnemyStats() config.EnemyStats {
	return e.difficulty.Enemy(e.score)
}
