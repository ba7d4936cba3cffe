package services

const (
	greetingText    = "GM"
	greetingGIF     = "https://media.tenor.com/y1n4lM9lR_kAAAAM/take-no.gif"
	allGreetedText  = "EUCH AUCH EINEN GUTEN MORGEN!"
	allGreetedPhoto = "https://picr.eu/images/2023/04/18/FpnQl.jpg"
	missingPrefix   = "Fehlende GM-Nachrichten von: "
	poemPhoto       = "https://picr.eu/images/2023/04/18/Fp87k.jpg"
	weeklyText      = "Es ist Sonntag! Check-In nicht vergessen!"
	startText       = "ham ham lecker eisen"
	liftUsage       = "Bitte geben Sie eine Nachricht nach dem /lift Befehl ein."
)

const poem = "Stahl in den Handen,\n" +
	"Muskeln wachsen, Kraft erwacht,\n" +
	"Korper formen sich.\n" +
	"GN."

const rollinsQuote = "I have found the Iron to be my greatest friend.\n" +
	"It never freaks out on me, never runs.\n" +
	"Friends may come and go.\n" +
	"But two hundred pounds is always two hundred pounds."

const nakoPoem = "Im Labyrinth der Seele wandert Michael,\n" +
	"Verloren, suchend, wie ein Schatten blind,\n" +
	"Zerfurcht sein Herz, sein Geist noch unbestandig,\n" +
	"Ein junger Mann, der seinen Weg nicht findet.\n\n" +
	"Der Lebenssturme wilder Tanz umhullt ihn,\n" +
	"Zerrt ihn hinfort, verweht die Hoffnung fein,\n" +
	"Die Qual der Wahl, die Schatten seiner Zweifel,\n" +
	"Lahmen seinen Geist, gefangen im Sein.\n\n" +
	"Und schliesslich kommt er an, am Rand der Welt,\n" +
	"Ein kleines Land, von blauem Meer umspult,\n" +
	"Er dachte, er fande hier das Paradies,\n" +
	"Aber es war Malta, und Malta war ok."
