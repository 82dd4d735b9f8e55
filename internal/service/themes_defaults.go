package service

import "visionboard-server/internal/models"

// AvailableStyles - допустимые визуальные стили элементов доски.
var AvailableStyles = []string{
	"photography",
	"watercolor",
	"abstract",
	"oilpainting",
	"minimalist",
	"impressionist",
	"cinematic",
	"macro",
	"landscape",
	"symbolic",
	"dreamy",
	"vintage",
}

// fallbackThemes - полный набор тем на случай неразборчивого ответа модели.
var fallbackThemes = []models.Theme{
	{
		Title:       "New Beginnings",
		ImagePrompt: "Majestic sunrise breaking through morning mist over a calm mountain lake, golden light rays streaming through pine trees, reflection on still water, sense of possibility",
		Affirmation: "Every sunrise brings new possibilities",
		Style:       "landscape",
		GridSize:    models.GridLarge,
	},
	{
		Title:       "Inner Peace",
		ImagePrompt: "Zen garden with perfectly raked sand patterns, single smooth stone, cherry blossom petals floating down, soft morning light, tranquil atmosphere",
		Affirmation: "I am calm, centered, and at peace",
		Style:       "minimalist",
		GridSize:    models.GridMedium,
	},
	{
		Title:       "Growth",
		ImagePrompt: "Tiny seedling pushing through rich dark soil, morning dewdrops on delicate leaves, soft golden backlight, extreme macro detail showing life force",
		Affirmation: "I grow stronger each day",
		Style:       "macro",
		GridSize:    models.GridSmall,
	},
	{
		Title:       "Creative Flow",
		ImagePrompt: "Artist's workspace with vibrant paint splashes on wooden table, scattered brushes in mason jars, half-finished canvas, golden afternoon light through dusty window",
		Affirmation: "My creativity flows freely",
		Style:       "photography",
		GridSize:    models.GridMedium,
	},
	{
		Title:       "Connection",
		ImagePrompt: "Two steaming coffee cups on rustic wooden table by rain-streaked window, cozy blanket draped on chair, warm candlelight, intimate atmosphere",
		Affirmation: "I am surrounded by love",
		Style:       "cinematic",
		GridSize:    models.GridLarge,
	},
	{
		Title:       "Adventure",
		ImagePrompt: "Winding mountain path disappearing into misty peaks, wildflowers along trail edge, dramatic clouds, sense of journey and discovery",
		Affirmation: "Life is an adventure I embrace",
		Style:       "landscape",
		GridSize:    models.GridSmall,
	},
	{
		Title:       "Vitality",
		ImagePrompt: "Fresh green smoothie in glass jar surrounded by vibrant fruits and vegetables, morning kitchen light, dewdrops on produce, health and energy",
		Affirmation: "My body is strong and energized",
		Style:       "photography",
		GridSize:    models.GridMedium,
	},
	{
		Title:       "Abundance",
		ImagePrompt: "Overflowing harvest basket with colorful fresh produce, golden wheat field in background, warm sunset light, sense of plenty and gratitude",
		Affirmation: "Abundance flows into my life",
		Style:       "impressionist",
		GridSize:    models.GridSmall,
	},
	{
		Title:       "Dreams",
		ImagePrompt: "Open journal with handwritten goals on wooden desk, golden pen, soft window light, cup of tea, dreamy bokeh background",
		Affirmation: "I am creating my dream life",
		Style:       "dreamy",
		GridSize:    models.GridSmall,
	},
	{
		Title:       "Clarity",
		ImagePrompt: "Crystal clear mountain stream flowing over smooth stones, light refracting through water, forest reflected on surface, pure and serene",
		Affirmation: "My mind is clear and focused",
		Style:       "watercolor",
		GridSize:    models.GridMedium,
	},
	{
		Title:       "Courage",
		ImagePrompt: "Single lit candle flame in darkness, warm glow illuminating surroundings, sense of hope and bravery, intimate and powerful",
		Affirmation: "I have the courage to grow",
		Style:       "cinematic",
		GridSize:    models.GridSmall,
	},
	{
		Title:       "Gratitude",
		ImagePrompt: "Golden wheat field at sunset, warm light painting the grain, gentle breeze visible in movement, expansive sky, thankfulness",
		Affirmation: "I am grateful for this moment",
		Style:       "vintage",
		GridSize:    models.GridSmall,
	},
}

// padThemes - короткий циклический набор для добивки недостающих тем.
var padThemes = []models.Theme{
	{
		Title:       "Possibility",
		ImagePrompt: "Vast starry night sky, milky way stretching across darkness, silhouette of mountains, sense of infinite possibility",
		Affirmation: "Anything is possible",
		Style:       "landscape",
		GridSize:    models.GridSmall,
	},
	{
		Title:       "Balance",
		ImagePrompt: "Smooth stones stacked in perfect balance on beach, calm ocean in background, zen meditation concept",
		Affirmation: "I find balance in all things",
		Style:       "minimalist",
		GridSize:    models.GridSmall,
	},
	{
		Title:       "Joy",
		ImagePrompt: "Field of wildflowers in full bloom, butterflies dancing, golden sunlight, pure happiness and freedom",
		Affirmation: "Joy fills my days",
		Style:       "impressionist",
		GridSize:    models.GridSmall,
	},
	{
		Title:       "Focus",
		ImagePrompt: "Single leaf with perfect detail, morning dew drops, soft blurred background, clarity and intention",
		Affirmation: "I am focused and intentional",
		Style:       "macro",
		GridSize:    models.GridSmall,
	},
	{
		Title:       "Serenity",
		ImagePrompt: "Misty forest path at dawn, light filtering through ancient trees, moss-covered stones, peaceful solitude",
		Affirmation: "Peace flows through me",
		Style:       "dreamy",
		GridSize:    models.GridSmall,
	},
}
