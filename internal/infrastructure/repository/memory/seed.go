package memory

import "github.com/riskibarqy/dietpop-lineup/internal/domain/pop"

// SeedPops returns the standard catalog in display order.
func SeedPops() []pop.Pop {
	return []pop.Pop{
		{ID: "diet-coke", Name: "Diet Coke", Brand: "Coca-Cola", PrimaryColor: "#C0C0C0", SecondaryColor: "#FF0000", AccentColor: "#FFFFFF", Description: "The original diet cola", Caffeine: pop.Ptr(46), Calories: pop.Ptr(0)},
		{ID: "coke-zero", Name: "Coke Zero Sugar", Brand: "Coca-Cola", PrimaryColor: "#000000", SecondaryColor: "#FF0000", AccentColor: "#FFFFFF", Description: "Real Coke taste, zero calories", Caffeine: pop.Ptr(34), Calories: pop.Ptr(0)},
		{ID: "diet-coke-cherry", Name: "Diet Coke Cherry", Brand: "Coca-Cola", PrimaryColor: "#8B0000", SecondaryColor: "#C0C0C0", AccentColor: "#FF69B4", Description: "Diet Coke with cherry flavor", Caffeine: pop.Ptr(46), Calories: pop.Ptr(0)},
		{ID: "diet-coke-vanilla", Name: "Diet Coke Vanilla", Brand: "Coca-Cola", PrimaryColor: "#F5DEB3", SecondaryColor: "#C0C0C0", AccentColor: "#8B4513", Description: "Diet Coke with vanilla flavor", Caffeine: pop.Ptr(46), Calories: pop.Ptr(0)},
		{ID: "diet-pepsi", Name: "Diet Pepsi", Brand: "PepsiCo", PrimaryColor: "#004B93", SecondaryColor: "#B8C5D6", AccentColor: "#FFFFFF", Description: "Light, crisp, refreshing", Caffeine: pop.Ptr(35), Calories: pop.Ptr(0)},
		{ID: "pepsi-zero", Name: "Pepsi Zero Sugar", Brand: "PepsiCo", PrimaryColor: "#000000", SecondaryColor: "#004B93", AccentColor: "#FFFFFF", Description: "Maximum taste, zero sugar", Caffeine: pop.Ptr(69), Calories: pop.Ptr(0)},
		{ID: "diet-pepsi-wild-cherry", Name: "Diet Pepsi Wild Cherry", Brand: "PepsiCo", PrimaryColor: "#DC143C", SecondaryColor: "#004B93", AccentColor: "#FFB6C1", Description: "Diet Pepsi with wild cherry flavor", Caffeine: pop.Ptr(35), Calories: pop.Ptr(0)},
		{ID: "diet-dr-pepper", Name: "Diet Dr Pepper", Brand: "Dr Pepper", PrimaryColor: "#722F37", SecondaryColor: "#B8860B", AccentColor: "#FFFFFF", Description: "23 flavors, zero calories", Caffeine: pop.Ptr(41), Calories: pop.Ptr(0)},
		{ID: "dr-pepper-zero", Name: "Dr Pepper Zero Sugar", Brand: "Dr Pepper", PrimaryColor: "#000000", SecondaryColor: "#722F37", AccentColor: "#B8860B", Description: "The taste you deserve with zero sugar", Caffeine: pop.Ptr(41), Calories: pop.Ptr(0)},
		{ID: "diet-dr-pepper-cherry", Name: "Diet Dr Pepper Cherry", Brand: "Dr Pepper", PrimaryColor: "#8B0000", SecondaryColor: "#722F37", AccentColor: "#FF69B4", Description: "Dr Pepper with cherry flavor", Caffeine: pop.Ptr(41), Calories: pop.Ptr(0)},
		{ID: "sprite-zero", Name: "Sprite Zero Sugar", Brand: "Coca-Cola", PrimaryColor: "#00AF3F", SecondaryColor: "#FFFFFF", AccentColor: "#32CD32", Description: "Crisp, clean taste with zero sugar", Caffeine: pop.Ptr(0), Calories: pop.Ptr(0)},
		{ID: "diet-7up", Name: "Diet 7UP", Brand: "7UP", PrimaryColor: "#32CD32", SecondaryColor: "#FFFFFF", AccentColor: "#228B22", Description: "The uncola, zero calories", Caffeine: pop.Ptr(0), Calories: pop.Ptr(0)},
		{ID: "diet-mountain-dew", Name: "Diet Mountain Dew", Brand: "PepsiCo", PrimaryColor: "#ADFF2F", SecondaryColor: "#228B22", AccentColor: "#FFFFFF", Description: "Diet fuel for adventures", Caffeine: pop.Ptr(54), Calories: pop.Ptr(0)},
		{ID: "mtn-dew-zero", Name: "Mtn Dew Zero Sugar", Brand: "PepsiCo", PrimaryColor: "#000000", SecondaryColor: "#ADFF2F", AccentColor: "#228B22", Description: "All the Dew, none of the sugar", Caffeine: pop.Ptr(68), Calories: pop.Ptr(0)},
		{ID: "diet-orange-crush", Name: "Diet Orange Crush", Brand: "Dr Pepper Snapple", PrimaryColor: "#FF8C00", SecondaryColor: "#FFE4B5", AccentColor: "#FF4500", Description: "Orange goodness without the calories", Caffeine: pop.Ptr(0), Calories: pop.Ptr(0)},
		{ID: "diet-sunkist", Name: "Diet Sunkist Orange", Brand: "Dr Pepper Snapple", PrimaryColor: "#FFA500", SecondaryColor: "#FFFF00", AccentColor: "#FF6347", Description: "Fun, sun and the beach in every sip", Caffeine: pop.Ptr(41), Calories: pop.Ptr(0)},
		{ID: "diet-a-w", Name: "Diet A&W Root Beer", Brand: "Dr Pepper Snapple", PrimaryColor: "#8B4513", SecondaryColor: "#D2691E", AccentColor: "#F5DEB3", Description: "Made with aged vanilla", Caffeine: pop.Ptr(0), Calories: pop.Ptr(0)},
		{ID: "diet-barqs", Name: "Diet Barq's Root Beer", Brand: "Coca-Cola", PrimaryColor: "#654321", SecondaryColor: "#8B4513", AccentColor: "#F4A460", Description: "Diet Barqs has bite", Caffeine: pop.Ptr(18), Calories: pop.Ptr(0)},
		{ID: "diet-ginger-ale", Name: "Diet Canada Dry", Brand: "Dr Pepper Snapple", PrimaryColor: "#DAA520", SecondaryColor: "#FFFFFF", AccentColor: "#228B22", Description: "Made from real ginger", Caffeine: pop.Ptr(0), Calories: pop.Ptr(0)},
		{ID: "coke-energy-zero", Name: "Coke Energy Zero Sugar", Brand: "Coca-Cola", PrimaryColor: "#FF0000", SecondaryColor: "#000000", AccentColor: "#FFD700", Description: "Energy you want, taste you love", Caffeine: pop.Ptr(114), Calories: pop.Ptr(0)},
		{ID: "diet-coke-lime", Name: "Diet Coke Lime", Brand: "Coca-Cola", PrimaryColor: "#32CD32", SecondaryColor: "#C0C0C0", AccentColor: "#ADFF2F", Description: "Diet Coke with lime flavor", Caffeine: pop.Ptr(46), Calories: pop.Ptr(0)},
		{ID: "diet-coke-orange-vanilla", Name: "Diet Coke Orange Vanilla", Brand: "Coca-Cola", PrimaryColor: "#FF8C00", SecondaryColor: "#F5DEB3", AccentColor: "#C0C0C0", Description: "Orange vanilla twist", Caffeine: pop.Ptr(46), Calories: pop.Ptr(0)},
		{ID: "sierra-mist-zero", Name: "Sierra Mist Zero Sugar", Brand: "PepsiCo", PrimaryColor: "#FFFF00", SecondaryColor: "#FFFFFF", AccentColor: "#32CD32", Description: "Natural lemon lime flavor", Caffeine: pop.Ptr(0), Calories: pop.Ptr(0)},
		{ID: "tab", Name: "Tab Cola", Brand: "Coca-Cola", PrimaryColor: "#FF1493", SecondaryColor: "#FFFFFF", AccentColor: "#C0C0C0", Description: "The original diet cola", Caffeine: pop.Ptr(46), Calories: pop.Ptr(0), Year: pop.Ptr(1963)},
		{ID: "diet-coke-twisted-mango", Name: "Diet Coke Twisted Mango", Brand: "Coca-Cola", PrimaryColor: "#FF8C00", SecondaryColor: "#FFE4B5", AccentColor: "#C0C0C0", Description: "Exotic mango twist", Caffeine: pop.Ptr(46), Calories: pop.Ptr(0)},
	}
}
