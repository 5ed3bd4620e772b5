package keywords

// vocabulary is the pool claim tokens are drawn from. Short concrete
// nouns only: easy to say over the phone, unambiguous to type. With two
// draws per token the space is |vocabulary|^2, and generation retries
// against live open escrows on top of that.
var vocabulary = []string{
	"acorn", "alley", "amber", "anchor", "angle", "ankle", "antler", "apple",
	"apron", "arrow", "ashes", "atlas", "attic", "autumn", "badge", "bagel",
	"banana", "banjo", "barley", "barn", "basket", "beach", "beacon", "beak",
	"bean", "bear", "beaver", "bell", "belt", "bench", "berry", "bird",
	"bison", "blade", "blanket", "blossom", "board", "boat", "bolt", "bone",
	"book", "boot", "bottle", "boulder", "bowl", "branch", "brass", "bread",
	"brick", "bridge", "brook", "broom", "brush", "bucket", "bulb", "bush",
	"butter", "button", "cabin", "cactus", "camel", "candle", "canoe", "canyon",
	"carpet", "carrot", "castle", "cedar", "cellar", "chain", "chair", "chalk",
	"cherry", "chest", "chime", "chisel", "cider", "cliff", "clock", "cloud",
	"clover", "coal", "coast", "cobalt", "coconut", "coin", "comet", "compass",
	"copper", "coral", "cork", "corn", "cotton", "crane", "crater", "creek",
	"cricket", "crow", "crown", "crystal", "daisy", "deer", "delta", "desk",
	"dime", "dolphin", "donkey", "door", "dove", "dragon", "drift", "drum",
	"dune", "eagle", "earth", "echo", "eel", "elbow", "elk", "ember",
	"engine", "fabric", "falcon", "fawn", "feather", "fence", "fern", "ferry",
	"fiddle", "field", "finch", "flag", "flame", "flask", "flint", "flock",
	"floor", "flour", "flute", "foam", "forest", "forge", "fox", "frost",
	"galaxy", "garden", "garlic", "gate", "gazelle", "gear", "geyser", "giant",
	"ginger", "glacier", "glass", "glove", "goat", "goose", "grain", "granite",
	"grape", "grass", "gravel", "grove", "guitar", "gull", "hammer", "harbor",
	"harp", "hatch", "hawk", "hazel", "heron", "hill", "hinge", "hive",
	"honey", "hoof", "hook", "horizon", "horn", "horse", "husk", "ice",
	"iris", "iron", "island", "ivory", "ivy", "jade", "jaguar", "jungle",
	"juniper", "kayak", "kettle", "kite", "knight", "knot", "ladder", "lagoon",
	"lake", "lantern", "lark", "latch", "lava", "leaf", "ledge", "lemon",
	"lentil", "lichen", "lily", "lime", "linen", "lion", "lizard", "llama",
	"lobster", "locket", "log", "lotus", "lumber", "lynx", "magnet", "mango",
	"mantle", "maple", "marble", "marsh", "mast", "meadow", "melon", "mesa",
	"mill", "mint", "mirror", "mole", "moon", "moose", "moss", "moth",
	"mountain", "mule", "mushroom", "needle", "nest", "nickel", "north", "nut",
	"oak", "oar", "oasis", "ocean", "olive", "onion", "opal", "orange",
	"orchard", "orchid", "otter", "owl", "oyster", "paddle", "palm", "panda",
	"pansy", "panther", "paper", "parrot", "peach", "pearl", "pebble", "pecan",
	"pelican", "pencil", "penguin", "peony", "pepper", "petal", "pigeon", "pine",
	"planet", "plank", "plateau", "plum", "pond", "pony", "poplar", "poppy",
	"prairie", "prism", "pumpkin", "quail", "quarry", "quartz", "quill", "rabbit",
	"raccoon", "raft", "rain", "raisin", "rake", "ranch", "raven", "reef",
	"reed", "ribbon", "ridge", "river", "robin", "rocket", "rope", "rose",
	"rudder", "rust", "saddle", "sage", "sail", "salmon", "salt", "sand",
	"sapphire", "scale", "seal", "sequoia", "shell", "shore", "shovel", "silk",
	"silver", "sky", "slate", "sleet", "snow", "sparrow", "spear", "spice",
	"spider", "spruce", "squash", "squirrel", "stable", "star", "steam", "steel",
	"stone", "stork", "storm", "stream", "summit", "sun", "swamp", "swan",
	"thistle", "thorn", "thunder", "tiger", "timber", "toad", "torch", "trail",
	"tulip", "tundra", "turtle", "valley", "velvet", "vine", "violet", "walnut",
	"walrus", "wave", "wheat", "willow", "wind", "wolf", "wren", "zebra",
}
