package trophy

// DemoAchievements returns the sample dataset used to seed an empty tracker.
func DemoAchievements() []Achievement {
	demo := []Achievement{
		{ID: "1", Name: "Heartbreaker", Description: "Complete the game in co-op mode", Progress: 60, Priority: PriorityHigh, Favorite: true, GlobalPercentage: 12.5, Rarity: RarityRare, Game: "Portal 2"},
		{ID: "2", Name: "Still Alive", Description: "Complete the game", Achieved: true, Progress: 100, Priority: PriorityMedium, GlobalPercentage: 78.3, Rarity: RarityCommon, Game: "Portal 2"},
		{ID: "3", Name: "Professor Portal", Description: "Complete all test chambers", Progress: 75, Priority: PriorityMedium, Favorite: true, GlobalPercentage: 45.2, Rarity: RarityUncommon, Game: "Portal 2"},
		{ID: "6", Name: "Speed Runner", Description: "Complete the game in under 2 hours", Priority: PriorityHigh, Favorite: true, GlobalPercentage: 3.2, Rarity: RarityEpic, Game: "Portal 2"},
		{ID: "7", Name: "Friendly Fire", Description: "Complete co-op without killing your partner", Achieved: true, Progress: 100, Priority: PriorityLow, GlobalPercentage: 56.8, Rarity: RarityCommon, Game: "Portal 2"},

		{ID: "4", Name: "Lambda Locator", Description: "Find all lambda caches", Progress: 18, Priority: PriorityLow, GlobalPercentage: 23.1, Rarity: RarityUncommon, Game: "Half-Life 2"},
		{ID: "5", Name: "Zombie Chopper", Description: "Kill 1000 zombies with the gravity gun", Progress: 45, Priority: PriorityHigh, GlobalPercentage: 8.7, Rarity: RarityRare, Game: "Half-Life 2"},
		{ID: "9", Name: "Gravity Master", Description: "Kill 50 enemies with physics objects", Achieved: true, Progress: 100, Priority: PriorityMedium, GlobalPercentage: 42.3, Rarity: RarityCommon, Game: "Half-Life 2"},

		{ID: "8", Name: "Pacifist", Description: "Complete the game without killing anyone", Progress: 30, Priority: PriorityMedium, Favorite: true, GlobalPercentage: 15.4, Rarity: RarityRare, Game: "Undertale"},
		{ID: "10", Name: "True Hero", Description: "Get the true pacifist ending", Progress: 10, Priority: PriorityHigh, Favorite: true, GlobalPercentage: 8.9, Rarity: RarityRare, Game: "Undertale"},
		{ID: "11", Name: "Determined", Description: "Die 100 times", Achieved: true, Progress: 100, Priority: PriorityLow, GlobalPercentage: 67.2, Rarity: RarityCommon, Game: "Undertale"},

		{ID: "12", Name: "Eye on You", Description: "Defeat the Eye of Cthulhu", Achieved: true, Progress: 100, Priority: PriorityMedium, GlobalPercentage: 82.5, Rarity: RarityCommon, Game: "Terraria"},
		{ID: "13", Name: "Slayer of Worlds", Description: "Defeat every boss", Progress: 35, Priority: PriorityHigh, Favorite: true, GlobalPercentage: 5.2, Rarity: RarityEpic, Game: "Terraria"},
		{ID: "14", Name: "Home Sweet Home", Description: "Build a house for every NPC", Progress: 60, Priority: PriorityMedium, GlobalPercentage: 28.7, Rarity: RarityUncommon, Game: "Terraria"},

		{ID: "15", Name: "Elden Lord", Description: `Achieve the "Elden Lord" ending`, Priority: PriorityHigh, Favorite: true, GlobalPercentage: 28.4, Rarity: RarityUncommon, Game: "Elden Ring"},
		{ID: "16", Name: "Shardbearer Godrick", Description: "Defeated Shardbearer Godrick", Achieved: true, Progress: 100, Priority: PriorityMedium, GlobalPercentage: 67.8, Rarity: RarityCommon, Game: "Elden Ring"},
		{ID: "17", Name: "Shardbearer Malenia", Description: "Defeated Shardbearer Malenia", Progress: 15, Priority: PriorityHigh, Favorite: true, GlobalPercentage: 34.2, Rarity: RarityUncommon, Game: "Elden Ring"},
		{ID: "18", Name: "Legendary Armaments", Description: "Acquired all legendary armaments", Progress: 40, Priority: PriorityMedium, GlobalPercentage: 8.9, Rarity: RarityRare, Game: "Elden Ring"},
		{ID: "19", Name: "Legendary Ashen Remains", Description: "Acquired all legendary ashen remains", Progress: 25, Priority: PriorityLow, GlobalPercentage: 6.7, Rarity: RarityRare, Game: "Elden Ring"},
		{ID: "20", Name: "Age of the Stars", Description: `Achieved the "Age of the Stars" ending`, Priority: PriorityHigh, Favorite: true, GlobalPercentage: 19.3, Rarity: RarityUncommon, Game: "Elden Ring"},
	}

	for i := range demo {
		demo[i].Icon = DefaultIcon
		demo[i].GameIcon = DefaultIcon
	}
	return demo
}
