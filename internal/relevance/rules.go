package relevance

// word wraps a lowercase term with Unicode-aware word boundaries. RE2's \b
// only understands ASCII word characters, so Cyrillic and Arabic terms need
// explicit letter/digit guards to avoid substring collisions ("war" must not
// match "warm").
func word(term string) string {
	return `(?:^|[^\pL\pN])(?:` + term + `)(?:[^\pL\pN]|$)`
}

// DefaultPatterns is the built-in topical rule set: four independent
// clusters (Russia/geopolitics, the war, cryptocurrency, pandemic) across
// English, Russian, Chinese and Arabic. Each entry is a complete regular
// expression over lowercased text.
func DefaultPatterns() []string {
	terms := []string{
		// Russia and geopolitics
		"russia", "russian", "putin", "moscow", "kremlin",
		"ukraine", "ukrainian", "zelensky", "kyiv", "kiev",
		"crimea", "donbas", "sanctions?", "gazprom",
		`nord\s?stream`, "wagner", "lavrov", "shoigu",
		"medvedev", "peskov", "nato", "europa", "usa",
		"soviet", "ussr", `post\W?soviet`,

		// The war
		"svo", "спецоперация", `special\s+military\s+operation`,
		"война", "war", "conflict", "конфликт",
		"наступление", "offensive", "атака", "attack",
		"удар", "strike", "обстрел", "shelling",
		"дрон", "drone", "missile", "ракета",
		"эскалация", "escalation", "мобилизация", "mobilization",
		"фронт", "frontline", "захват", "capture",
		"освобождение", "liberation", "бой", "battle",
		"потери", "casualties", "погиб", "killed",
		"ранен", "injured", "пленный", `prisoner\s+of\s+war`,
		"переговоры", "talks", "перемирие", "ceasefire",
		"санкции", "оружие", "weapons",
		"поставки", "supplies", "himars", "atacms",

		// Cryptocurrency
		"bitcoin", "btc", "биткоин", "比特币",
		"ethereum", "eth", "эфир", "以太坊",
		`binance\s+coin`, "bnb", "usdt", "tether",
		"xrp", "ripple", "cardano", "ada",
		"solana", "sol", "doge", "dogecoin",
		"avalanche", "avax", "polkadot", "dot",
		"chainlink", "link", "tron", "trx",
		"cbdc", `central\s+bank\s+digital\s+currency`, `цифровой\s+рубль`,
		`digital\s+yuan`, `euro\s+digital`, "defi", `децентрализованные\s+финансы`,
		"nft", `non\s*-\s*fungible\s+token`, "sec", `цб\s+рф`,
		"регуляция", "regulation", "запрет", "ban",
		"майнинг", "mining", "halving", "халвинг",
		"волатильность", "volatility", "crash", "крах",

		// Pandemic
		"pandemic", "пандемия", "疫情", "جائحة",
		"outbreak", "вспышка", "эпидемия", "epidemic",
		"virus", "вирус", "вирусы", "变异株",
		"vaccine", "вакцина", "疫苗", "لقاح",
		"booster", "бустер", "ревакцинация",
		"quarantine", "карантин", "隔离", `حجر\s+صحي`,
		"lockdown", "локдаун", "封锁",
		"mutation", "мутация", "变异",
		"strain", "штамм", "omicron", "delta",
		"biosafety", "биобезопасность", "生物安全",
		`lab\s+leak`, `лабораторная\s+утечка`, "实验室泄漏",
		`gain\s+of\s+function`, `усиление\s+функции`,
		"who", "воз", "cdc", "роспотребнадзор",
		`infection\s+rate`, "заразность", "死亡率",
		"hospitalization", "госпитализация",
	}

	patterns := make([]string, 0, len(terms))
	for _, t := range terms {
		patterns = append(patterns, word(t))
	}
	return patterns
}
