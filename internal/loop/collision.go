package loop

import (
	"github.com/tomz197/skyshooter/internal/loop/config"
)

// checkCollisions runs the bullet/enemy pass, then the enemy/player pass.
func (g *Game) checkCollisions() {
	g.checkBulletEnemyCollisions()
	g.checkPlayerCollisions()
}

// checkBulletEnemyCollisions lets each bullet, in order, destroy the
// lowest-indexed live enemy it overlaps. Each hit scores ScorePerEnemy.
func (g *Game) checkBulletEnemyCollisions() {
	st := g.state
	if len(st.Bullets) == 0 || len(st.Enemies) == 0 {
		return
	}

	enemies := st.Enemies
	g.grid.Clear()
	for i, e := range enemies {
		g.grid.Insert(e.Bounds(), i)
	}

	for _, b := range st.Bullets {
		br := b.Bounds()
		hit := -1
		g.grid.Query(br, func(i int) bool {
			if hit >= 0 && i >= hit {
				return false
			}
			if !enemies[i].IsDestroyed() && br.Overlaps(enemies[i].Bounds()) {
				hit = i
			}
			return false
		})
		if hit < 0 {
			continue
		}

		b.MarkDestroyed()
		enemies[hit].MarkDestroyed()
		st.Score += config.ScorePerEnemy
	}

	st.Bullets = compact(st.Bullets)
	st.Enemies = compact(st.Enemies)
}

// checkPlayerCollisions ends the game on the first live enemy touching the player.
func (g *Game) checkPlayerCollisions() {
	st := g.state
	pr := st.Player.Bounds()
	for _, e := range st.Enemies {
		if pr.Overlaps(e.Bounds()) {
			g.setGameOver()
			return // Game over, skip remaining checks
		}
	}
}
