package assets

// Emoji glyphs for the mining screen.
const (
	GlyphGround    = "⬛"
	GlyphCursor    = "🔶"
	GlyphHammer    = "🔨"
	GlyphPickaxe   = "⛏️"
	GlyphStability = "🪨"
	GlyphTreasure  = "💎"
)

// RockGlyphs maps remaining tile hp (1-4) to its glyph. Index 0 is unused.
var RockGlyphs = [5]string{"", "🟫", "🟤", "🟧", "🟥"}

// RockGlyph returns the glyph for a tile with hp remaining.
func RockGlyph(hp uint) string {
	if hp == 0 {
		return GlyphGround
	}
	if int(hp) >= len(RockGlyphs) {
		return RockGlyphs[len(RockGlyphs)-1]
	}
	return RockGlyphs[hp]
}

// treasureGlyphs is indexed by the shape value of a treasure cell.
var treasureGlyphs = []string{
	"🦴", "🐚", "🦪", // trilobite
	"🔮", // geode
	"🦴", "🦴", "🦴", // femur
	"🪙", // gold nugget
	"🐌", "🌀", // ammonite
	"🪙", // old coin
	"🏮", "🕯️", // lantern
}

// TreasureGlyph returns the glyph for a treasure cell's visual index.
func TreasureGlyph(visual int) string {
	if visual < 0 || visual >= len(treasureGlyphs) {
		return GlyphTreasure
	}
	return treasureGlyphs[visual]
}
