package tankbattle

// EnemyCommand is what an enemy tank does with one random draw.
type EnemyCommand struct {
	Fire bool
	Move Action
	// RetryOnBlock grants one more draw when Move is blocked.
	RetryOnBlock bool
}

// PlanEnemy turns a uniform draw over the action space into a command.
// On the first draw a non-fire action keeps the tank rolling in its facing
// direction; after a blocked move the drawn direction is used as is and no
// further retry is granted.
func PlanEnemy(facing Direction, draw Action, blocked bool) EnemyCommand {
	if draw == ActionFire {
		return EnemyCommand{Fire: true}
	}
	if blocked {
		if _, ok := draw.Direction(); !ok {
			return EnemyCommand{Move: ActionNone}
		}
		return EnemyCommand{Move: draw}
	}
	return EnemyCommand{Move: Action(facing), RetryOnBlock: true}
}

// drawAction samples uniformly over the action space.
func (e *Engine) drawAction() Action {
	return Action(e.rng.Intn(NumActions))
}

// runEnemies executes one policy step for every enemy alive at tick start.
func (e *Engine) runEnemies() {
	n := e.world.Len()
	for i := 0; i < n; i++ {
		if ent := e.world.At(i); ent.Dead || !isEnemy(ent) {
			continue
		}

		blocked := false
		for {
			cmd := PlanEnemy(e.world.At(i).Dir, e.drawAction(), blocked)
			if cmd.Fire {
				e.fire(i)
				break
			}
			if e.tryMove(i, cmd.Move) != MoveBlocked || !cmd.RetryOnBlock {
				break
			}
			blocked = true
		}
	}
}
