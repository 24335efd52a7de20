package tankbattle

import (
	"math/rand"
	"testing"
)

func TestPlanEnemy(t *testing.T) {
	tests := []struct {
		name    string
		facing  Direction
		draw    Action
		blocked bool
		want    EnemyCommand
	}{
		{"fire first draw", DirUp, ActionFire, false, EnemyCommand{Fire: true}},
		{"keeps facing", DirLeft, ActionDown, false, EnemyCommand{Move: ActionLeft, RetryOnBlock: true}},
		{"keeps facing on same draw", DirDown, ActionDown, false, EnemyCommand{Move: ActionDown, RetryOnBlock: true}},
		{"retry fire", DirUp, ActionFire, true, EnemyCommand{Fire: true}},
		{"retry takes drawn direction", DirUp, ActionRight, true, EnemyCommand{Move: ActionRight}},
		{"retry invalid draw", DirUp, ActionNone, true, EnemyCommand{Move: ActionNone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanEnemy(tt.facing, tt.draw, tt.blocked)
			if got != tt.want {
				t.Errorf("PlanEnemy(%v, %v, %v) = %+v, want %+v",
					tt.facing, tt.draw, tt.blocked, got, tt.want)
			}
		})
	}
}

func TestBoxedEnemyStaysPut(t *testing.T) {
	env := newTestEnv(t, false, 0)
	e := env.Engine()

	// Enemy at (3,3) walled in on every side
	id := e.addTank(pt(3, 3), DirUp, SideEnemy, 2, 1<<30)
	for _, c := range [...][2]int{{3, 2}, {3, 4}, {2, 3}, {4, 3}} {
		e.addBlock(KindWall, pt(c[0], c[1]), WallHard)
	}

	for range 50 {
		e.Tick()
		enemy := e.world.Get(id)
		if enemy == nil {
			t.Fatal("boxed enemy disappeared")
		}
		if enemy.Cell != pt(3, 3) || enemy.Moving() {
			t.Fatalf("boxed enemy moved to %+v -> %+v", enemy.Cell, enemy.Target)
		}
	}
}

// TestEnemyDrawCount runs the policy next to a mirror stream with the same
// seed: a fire draw or an accepted or busy move uses one value, a blocked
// move uses a second one.
func TestEnemyDrawCount(t *testing.T) {
	tests := []struct {
		name  string
		boxed bool
	}{
		{"boxed", true},
		{"open field", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, false, 0)
			e := env.Engine()

			e.addTank(pt(5, 5), DirUp, SideEnemy, 2, 1<<30)
			if tt.boxed {
				for _, c := range [...][2]int{{5, 4}, {5, 6}, {4, 5}, {6, 5}} {
					e.addBlock(KindWall, pt(c[0], c[1]), WallHard)
				}
			}

			const seed = 99
			e.rng = rand.New(rand.NewSource(seed))
			mirror := rand.New(rand.NewSource(seed))

			fires, retries := 0, 0
			for step := range 40 {
				e.runEnemies()

				if Action(mirror.Intn(NumActions)) == ActionFire {
					fires++
				} else if tt.boxed {
					mirror.Intn(NumActions)
					retries++
				}

				if got, want := e.rng.Int63(), mirror.Int63(); got != want {
					t.Fatalf("step %d: random stream out of step with the mirror", step)
				}
			}

			if tt.boxed && (fires == 0 || retries == 0) {
				t.Errorf("fires = %d, retries = %d; both paths should be exercised", fires, retries)
			}
		})
	}
}
