package loop

import (
	"github.com/tomz197/skyshooter/internal/draw"
	"github.com/tomz197/skyshooter/internal/object"
)

// update advances the player, bullets and enemies by one frame and prunes
// everything that left the playfield. Bullets fired this frame join the
// list afterwards, at their spawn position.
func (g *Game) update() {
	st := g.state
	ctx := st.UpdateContext()

	st.Player.Update(ctx)

	kept := st.Bullets[:0] // reuse backing array
	for _, b := range st.Bullets {
		if !b.Update(ctx) {
			kept = append(kept, b)
		}
	}
	clear(st.Bullets[len(kept):])
	st.Bullets = kept

	keptEnemies := st.Enemies[:0]
	for _, e := range st.Enemies {
		if !e.Update(ctx) {
			keptEnemies = append(keptEnemies, e)
		}
	}
	clear(st.Enemies[len(keptEnemies):])
	st.Enemies = keptEnemies

	st.FlushSpawned()
}

// Render clears s and draws the player, bullets and enemies, then the score.
// When the game is over the overlay with the final score is drawn on top.
// It reads nothing but the current state.
func (g *Game) Render(s draw.Surface) {
	st := g.state
	s.Clear()

	if st.Player != nil {
		st.Player.Draw(s)
	}
	for _, b := range st.Bullets {
		b.Draw(s)
	}
	for _, e := range st.Enemies {
		e.Draw(s)
	}

	s.DrawScore(st.Score)
	if st.GameState == GameStateGameOver {
		s.DrawGameOver(st.Score)
	}
}

// compact removes destroyed objects, keeping order.
func compact[T object.Destructible](objs []T) []T {
	kept := objs[:0]
	for _, o := range objs {
		if !o.IsDestroyed() {
			kept = append(kept, o)
		}
	}
	clear(objs[len(kept):])
	return kept
}
