package presets

var defaultShots = []Shot{
	{
		ID:          "front-hero",
		Label:       "Front Hero",
		Description: "Clean ecommerce hero shot, full body, neutral pose.",
		Prompt:      "front-facing full body hero shot, garment perfectly fitted, subtle pose showcasing silhouette, crisp seamless background, soft edge lighting",
		AspectRatio: "3:4",
	},
	{
		ID:          "three-quarter",
		Label:       "3/4 Look",
		Description: "Dynamic 3/4 angle for a more editorial feel.",
		Prompt:      "three-quarter angle, model looking slightly past camera, gentle movement in fabric, editorial pose, subtle shadow play",
		AspectRatio: "3:4",
	},
	{
		ID:          "detail",
		Label:       "Detail Close-up",
		Description: "Focus on craftsmanship and fabric texture.",
		Prompt:      "tight crop highlighting garment craftsmanship, macro lens depth of field, fine fabric texture, hands softly interacting with garment",
		AspectRatio: "1:1",
	},
	{
		ID:          "movement",
		Label:       "Motion Shot",
		Description: "Adds energy with walking or spinning movement.",
		Prompt:      "dynamic walking movement, flowing fabric captured mid motion, cinematic streaked lighting, runway-inspired energy",
		AspectRatio: "9:16",
	},
}

var defaultModels = []Model{
	{
		ID:     "editorial",
		Label:  "Editorial Muse",
		Prompt: "tall editorial runway model, sharp cheekbones, confident expression, poised posture",
		Notes:  "Runway-ready aesthetic for high-fashion positioning.",
	},
	{
		ID:     "inclusive",
		Label:  "Inclusive Fit",
		Prompt: "curvy plus-size model with glowing skin, natural curls, warm and inviting smile, inclusive beauty standards",
		Notes:  "Shows size diversity with an aspirational tone.",
	},
	{
		ID:     "street",
		Label:  "Streetstyle Creative",
		Prompt: "streetwear model, short natural curls, expressive pose, energetic attitude, contemporary vibe",
		Notes:  "Ideal for Gen Z and fashion-forward positioning.",
	},
	{
		ID:     "masculine",
		Label:  "Menswear Icon",
		Prompt: "masculine model with athletic build, clean grooming, charismatic gaze, relaxed confidence",
		Notes:  "Use for tailored fits or gender-neutral garments.",
	},
}

var defaultVibes = []Vibe{
	{
		Key:      "luxury",
		Label:    "Luxury Studio",
		Prompt:   "flagship fashion campaign lighting, sculpted softbox highlights, charcoal seamless, medium format depth, cinematic grading",
		Negative: "flat lighting, amateur, poor contrast, cluttered background, noisy texture",
	},
	{
		Key:      "lifestyle",
		Label:    "Lifestyle Loft",
		Prompt:   "sun-drenched loft, warm bounce lighting, lifestyle storytelling, designer interior details, candid energy",
		Negative: "overexposed, underexposed, messy background, chaotic composition, motion blur",
	},
	{
		Key:      "street",
		Label:    "Street Style",
		Prompt:   "urban editorial backdrop, shallow depth of field, dusk neon accents, energetic street pose, cinematic crop",
		Negative: "busy traffic, harsh flash, caricature, cartoon, fisheye distortion",
	},
	{
		Key:      "catalog",
		Label:    "Catalog Ready",
		Prompt:   "calibrated ecommerce lighting, seamless light gray backdrop, precise color accuracy, symmetrical pose, crisp detailing",
		Negative: "dramatic lighting, harsh shadows, tilted horizon, inconsistent color temperature",
	},
}

var defaultTargets = []Narrative{
	{
		ID:          "premium-millennial",
		Label:       "Premium Millennial",
		Description: "Urban professionals investing in quality wardrobe essentials.",
		Text:        "Designed for premium millennial tastemakers who value elevated daily style.",
	},
	{
		ID:          "genz-trend",
		Label:       "Gen Z Trendsetter",
		Description: "Statement making looks for content creators and trend leaders.",
		Text:        "Tailored to Gen Z trendsetters looking for bold, content-ready statement looks.",
	},
	{
		ID:          "bridal-edit",
		Label:       "Modern Bridal",
		Description: "Elegant occasionwear with refined, timeless styling.",
		Text:        "Crafted for modern bridal and occasionwear moments with editorial romance.",
	},
	{
		ID:          "mens-classic",
		Label:       "Menswear Classic",
		Description: "Tailored fits designed for sharp, clean styling.",
		Text:        "Geared towards sharp menswear stylings and refined silhouettes.",
	},
}

var defaultPrices = []Narrative{
	{
		ID:          "accessible",
		Label:       "Accessible Luxury",
		Description: "focus on attainable sophistication, highlight value-driven craftsmanship",
		Text:        "Positioned as accessible luxury — celebrate premium details with approachable polish.",
	},
	{
		ID:          "premium",
		Label:       "Premium Designer",
		Description: "spotlight artisanal details, emphasize premium materials and finishings",
		Text:        "Positioned as premium designer — highlight construction, fabric pedigree and elevated finishing.",
	},
	{
		ID:          "couture",
		Label:       "Couture Tier",
		Description: "infuse storytelling with high-fashion drama, couture tailoring and exclusivity",
		Text:        "Positioned as couture tier — dramatise tailoring mastery and exclusive craftsmanship.",
	},
}

var defaultAspects = []Aspect{
	{Ratio: "3:4", Dimensions: Dimensions{Width: 768, Height: 1024}},
	{Ratio: "4:3", Dimensions: Dimensions{Width: 1024, Height: 768}},
	{Ratio: "1:1", Dimensions: Dimensions{Width: 896, Height: 896}},
	{Ratio: "9:16", Dimensions: Dimensions{Width: 768, Height: 1365}},
}
