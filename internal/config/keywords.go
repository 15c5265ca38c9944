package config

// defaultCategories carries the compiled-in content mix targets and the
// keyword dictionary. The crypto keyword bucket sits under finance even
// though tech nominally owns a crypto label; the dictionary is data and
// operators reshuffle it via the YAML file, not a code change.
func defaultCategories() []CategoryConfig {
	return []CategoryConfig{
		{
			Name:        "tech",
			TargetRatio: 0.58,
			SubCategories: []SubCategoryConfig{
				{Name: "ai", Keywords: []string{
					"artificial intelligence", "machine learning", "neural network", "gpt", "llm",
					"deep learning", "ai model", "chatgpt", "openai", "anthropic", "claude",
					"gemini", "large language model", "generative ai", "transformer", "diffusion",
					"stable diffusion", "midjourney", "copilot", "ai assistant", "nlp",
					"natural language processing", "computer vision", "robotics", "autonomous",
				}},
				{Name: "apple", Keywords: []string{
					"iphone", "ipad", "mac", "macbook", "ios", "macos", "apple watch", "wwdc",
					"tim cook", "apple silicon", "m1", "m2", "m3", "m4", "airpods", "vision pro",
					"app store", "safari", "xcode", "swift", "apple tv", "homepod", "siri",
					"apple intelligence", "apple car", "apple pay", "icloud",
				}},
				{Name: "tesla", Keywords: []string{
					"tesla", "elon musk", "electric vehicle", "ev", "cybertruck", "model s",
					"model 3", "model x", "model y", "fsd", "full self driving", "autopilot",
					"supercharger", "gigafactory", "roadster", "semi", "powerwall", "megapack",
					"battery", "spacex", "starlink", "neuralink", "boring company",
				}},
				{Name: "general", Keywords: []string{
					"software", "startup", "app", "tech", "digital", "cloud", "programming",
					"developer", "api", "saas", "platform", "silicon valley", "venture capital",
					"ipo", "acquisition", "google", "microsoft", "amazon", "meta", "facebook",
					"instagram", "tiktok", "twitter", "x corp", "snapchat", "linkedin",
					"youtube", "netflix", "streaming", "cybersecurity", "hacking", "data breach",
					"5g", "6g", "semiconductor", "chip", "nvidia", "amd", "intel", "qualcomm", "tsmc",
				}},
			},
		},
		{
			Name:        "video_games",
			TargetRatio: 0.10,
			SubCategories: []SubCategoryConfig{
				{Name: "gaming_tech", Keywords: []string{
					"gaming", "video game", "game engine", "unreal engine", "unity", "graphics",
					"ray tracing", "dlss", "fsr", "frame rate", "fps", "4k gaming", "8k",
					"game streaming", "cloud gaming", "geforce now", "xbox cloud", "playstation",
					"xbox", "nintendo", "switch", "steam deck", "handheld gaming", "pc gaming",
					"gaming pc", "game developer", "indie game", "aaa game", "game release",
				}},
				{Name: "esports", Keywords: []string{
					"esports", "esport", "competitive gaming", "tournament", "championship",
					"league of legends", "valorant", "counter-strike", "cs2", "dota", "overwatch",
					"fortnite", "apex legends", "call of duty", "twitch", "streaming", "streamer",
					"pro player", "gaming team", "prize pool", "world championship",
				}},
				{Name: "hardware", Keywords: []string{
					"gaming gpu", "graphics card", "rtx", "radeon", "gaming laptop", "gaming monitor",
					"refresh rate", "144hz", "240hz", "gaming headset", "gaming mouse", "gaming keyboard",
					"mechanical keyboard", "rgb", "gaming chair", "gaming setup", "game controller",
					"dualsense", "xbox controller", "joystick", "gaming peripheral",
				}},
				{Name: "vr_ar", Keywords: []string{
					"virtual reality", "vr headset", "quest", "meta quest", "psvr", "htc vive",
					"valve index", "augmented reality", "mixed reality", "xr", "vr gaming",
					"immersive", "metaverse", "spatial computing", "beat saber", "half-life alyx",
					"vr experience", "motion tracking", "hand tracking", "haptic feedback",
				}},
			},
		},
		{
			Name:        "finance",
			TargetRatio: 0.14,
			SubCategories: []SubCategoryConfig{
				{Name: "markets", Keywords: []string{
					"stock", "stocks", "market", "dow jones", "nasdaq", "s&p 500", "nyse",
					"trading", "trader", "bull market", "bear market", "rally", "selloff",
					"earnings", "quarterly", "dividend", "share price", "market cap", "ipo",
					"merger", "acquisition", "m&a", "hedge fund", "mutual fund", "etf",
					"index fund", "portfolio", "asset", "equity",
				}},
				{Name: "banking", Keywords: []string{
					"bank", "banking", "jpmorgan", "goldman sachs", "morgan stanley",
					"citigroup", "wells fargo", "bank of america", "hsbc", "credit suisse",
					"ubs", "deutsche bank", "loan", "mortgage", "deposit", "lending",
					"savings", "checking", "credit", "debit", "fintech", "neobank",
				}},
				{Name: "investing", Keywords: []string{
					"investment", "investor", "invest", "return", "roi", "yield", "bond",
					"treasury", "securities", "fund manager", "wealth", "asset management",
					"private equity", "venture", "angel investor", "seed funding", "series a",
					"valuation", "unicorn", "retirement", "401k", "ira", "pension",
				}},
				{Name: "economy", Keywords: []string{
					"economy", "economic", "gdp", "inflation", "deflation", "recession",
					"federal reserve", "fed", "interest rate", "monetary policy", "fiscal",
					"treasury", "debt ceiling", "trade", "tariff", "export", "import",
					"unemployment", "jobs report", "labor market", "consumer", "spending",
					"cpi", "ppi", "central bank", "ecb", "boe", "imf", "world bank",
				}},
				{Name: "crypto", Keywords: []string{
					"bitcoin", "ethereum", "crypto", "cryptocurrency", "blockchain", "defi",
					"nft", "web3", "token", "wallet", "coinbase", "binance", "solana",
					"cardano", "dogecoin", "mining", "staking", "smart contract", "dao",
					"decentralized", "altcoin", "stablecoin", "usdc", "tether", "ledger",
				}},
			},
		},
		{
			Name:        "politics",
			TargetRatio: 0.08,
			SubCategories: []SubCategoryConfig{
				{Name: "government", Keywords: []string{
					"government", "congress", "senate", "house", "white house", "president",
					"biden", "trump", "administration", "cabinet", "supreme court", "judiciary",
					"executive order", "veto", "legislation", "law", "regulation", "agency",
					"fbi", "cia", "doj", "department", "secretary", "attorney general",
				}},
				{Name: "elections", Keywords: []string{
					"election", "vote", "voting", "ballot", "poll", "polling", "campaign",
					"candidate", "primary", "caucus", "delegate", "electoral", "swing state",
					"battleground", "democrat", "republican", "gop", "dnc", "rnc",
					"midterm", "runoff", "recount", "voter turnout",
				}},
				{Name: "policy", Keywords: []string{
					"policy", "bill", "act", "reform", "bipartisan", "partisan", "filibuster",
					"amendment", "constitutional", "healthcare", "immigration", "border",
					"gun control", "abortion", "tax", "spending", "budget", "stimulus",
					"infrastructure", "education", "social security", "medicare", "medicaid",
				}},
				{Name: "international", Keywords: []string{
					"nato", "un", "united nations", "eu", "european union", "g7", "g20",
					"summit", "treaty", "alliance", "sanction", "diplomat", "embassy",
					"foreign policy", "state department", "international", "geopolitical",
					"china", "russia", "ukraine", "israel", "iran", "north korea", "taiwan",
				}},
			},
		},
		{
			Name:        "climate",
			TargetRatio: 0.10,
			SubCategories: []SubCategoryConfig{
				{Name: "environment", Keywords: []string{
					"climate", "climate change", "global warming", "greenhouse", "carbon",
					"emissions", "pollution", "air quality", "water quality", "deforestation",
					"biodiversity", "species", "extinction", "ecosystem", "habitat",
					"conservation", "wildlife", "ocean", "coral reef", "plastic", "waste",
					"recycling", "epa", "environmental",
				}},
				{Name: "energy", Keywords: []string{
					"renewable", "solar", "wind", "hydro", "geothermal", "nuclear", "clean energy",
					"green energy", "fossil fuel", "oil", "gas", "coal", "petroleum",
					"energy grid", "power plant", "electricity", "ev charging", "hydrogen",
					"biofuel", "carbon capture", "net zero", "decarbonization",
				}},
				{Name: "sustainability", Keywords: []string{
					"sustainability", "sustainable", "green", "eco", "organic", "carbon neutral",
					"carbon footprint", "esg", "circular economy", "zero waste", "compost",
					"regenerative", "ethical", "fair trade", "local", "farm to table",
					"plant based", "vegan", "vegetarian", "electric", "hybrid",
				}},
			},
		},
	}
}

// defaultSourceHints lists outlet-name fragments in evaluation order.
// Gaming outlets come before generic tech ones: "The Verge Gaming" must
// resolve to video_games, not tech.
func defaultSourceHints() []SourceHintConfig {
	return []SourceHintConfig{
		{Substring: "gaming", Category: "video_games"},
		{Substring: "polygon", Category: "video_games"},
		{Substring: "ign", Category: "video_games"},
		{Substring: "eurogamer", Category: "video_games"},
		{Substring: "kotaku", Category: "video_games"},
		{Substring: "gamespot", Category: "video_games"},
		{Substring: "pc gamer", Category: "video_games"},
		{Substring: "tech", Category: "tech"},
		{Substring: "wired", Category: "tech"},
		{Substring: "verge", Category: "tech"},
		{Substring: "ars", Category: "tech"},
		{Substring: "engadget", Category: "tech"},
		{Substring: "cnet", Category: "tech"},
		{Substring: "bloomberg", Category: "finance"},
		{Substring: "wsj", Category: "finance"},
		{Substring: "financial", Category: "finance"},
		{Substring: "cnbc", Category: "finance"},
		{Substring: "market", Category: "finance"},
		{Substring: "politico", Category: "politics"},
		{Substring: "hill", Category: "politics"},
		{Substring: "politics", Category: "politics"},
		{Substring: "climate", Category: "climate"},
		{Substring: "environment", Category: "climate"},
		{Substring: "e360", Category: "climate"},
	}
}
