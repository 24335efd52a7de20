package tankbattle

// hit is the first collision a bullet matched this tick.
type hit uint8

const (
	hitNone hit = iota
	hitBullet
	hitTank
	hitBase
	hitWall
)

// resolveCollisions runs the player bullet pass, then the enemy bullet pass.
// A destroyed base ends resolution for the tick.
func (e *Engine) resolveCollisions() {
	if e.resolvePass(isPlayerBullet) {
		return
	}
	e.resolvePass(isEnemyBullet)
}

// resolvePass checks every live bullet selected by match. It returns true
// when the base was destroyed.
func (e *Engine) resolvePass(match func(*Entity) bool) bool {
	n := e.world.Len()
	for i := 0; i < n; i++ {
		b := e.world.At(i)
		if b.Dead || !match(b) {
			continue
		}
		if e.resolveBullet(i) == hitBase {
			return true
		}
	}
	return false
}

// resolveBullet applies the first matching collision for the bullet at index
// i, in order: opposing bullets, opposing tanks, base, walls.
func (e *Engine) resolveBullet(i int) hit {
	b := *e.world.At(i)
	rect := b.Rect()

	// Opposing bullets cancel out
	for j := range e.world.Len() {
		o := e.world.At(j)
		if o.Dead || o.Kind != KindBullet || !b.Side.Opposes(o.Side) {
			continue
		}
		if rect.Intersects(o.Rect()) {
			e.world.Kill(j)
			e.world.Kill(i)
			return hitBullet
		}
	}

	// Opposing tanks
	for j := range e.world.Len() {
		t := e.world.At(j)
		if t.Dead || t.Kind != KindTank || !b.Side.Opposes(t.Side) {
			continue
		}
		if rect.Intersects(t.Rect()) {
			e.destroyTank(j, b.Side)
			e.world.Kill(i)
			return hitTank
		}
	}

	// Base
	for j := range e.world.Len() {
		base := e.world.At(j)
		if base.Dead || base.Kind != KindBase {
			continue
		}
		if rect.Intersects(base.Rect()) {
			e.world.Kill(j)
			e.world.Kill(i)
			e.spawnExplosion(base.Pixel)
			e.baseDestroyed = true
			e.setTerminal(ReasonBaseDestroyed)
			return hitBase
		}
	}

	// Walls: every overlapping wall reacts, soft ones break
	result := hitNone
	for j := range e.world.Len() {
		w := e.world.At(j)
		if w.Dead || w.Kind != KindWall || !rect.Intersects(w.Rect()) {
			continue
		}
		if w.Wall == WallSoft {
			e.world.Kill(j)
		}
		if w.Wall != WallTransparent {
			e.world.Kill(i)
			result = hitWall
		}
	}
	return result
}

// destroyTank removes the tank at index j hit by a bullet from shooter.
func (e *Engine) destroyTank(j int, shooter Side) {
	tank := *e.world.At(j)
	e.world.Kill(j)
	e.spawnExplosion(tank.Pixel)

	if tank.Side == SideEnemy {
		e.award(shooter)
		e.spawnEnemy()
		return
	}

	if e.world.Count(isPlayer) == 0 {
		e.setTerminal(ReasonPlayersDestroyed)
	}
}

// award credits an enemy kill to the shooting side.
func (e *Engine) award(shooter Side) {
	if !shooter.IsPlayer() {
		return
	}
	reward := e.cfg.Engine.KillReward
	e.score += reward
	if shooter == SidePlayer1 {
		e.scoreP1 += reward
	} else {
		e.scoreP2 += reward
	}
	e.rewards[shooter].push(reward)
}

// removeFinishedExplosions drops explosions that played their last frame.
func (e *Engine) removeFinishedExplosions() {
	for i := range e.world.Len() {
		ent := e.world.At(i)
		if !ent.Dead && ent.Kind == KindExplosion && ent.AnimFrame >= explosionFrames {
			e.world.Kill(i)
		}
	}
}
