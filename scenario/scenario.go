// Package scenario is the immutable catalog of starting situations. The
// engine consumes it at game start; nothing here has behavior beyond lookup.
package scenario

import "echoes/locale"

// Text is a per-language string pair.
type Text struct {
	EN string
	SK string
}

// For returns the text for lang, falling back to English.
func (t Text) For(lang locale.Language) string {
	if lang == locale.Slovak && t.SK != "" {
		return t.SK
	}
	return t.EN
}

// Scenario is one selectable starting situation.
type Scenario struct {
	ID          string
	Title       Text
	Description Text
	Goal        Text
	Situation   Text
	ImagePrompt string
	// Secrets are hidden narrative facts passed to the backend to steer
	// narration. Never shown to the player.
	Secrets Text
}

// HasSecrets reports whether the scenario carries hidden truths for the
// narrator.
func (s Scenario) HasSecrets() bool {
	return s.Secrets.EN != "" || s.Secrets.SK != ""
}

// ByID looks up a scenario in the catalog.
func ByID(id string) (Scenario, bool) {
	for _, s := range Catalog {
		if s.ID == id {
			return s, true
		}
	}
	return Scenario{}, false
}

// Default returns the first catalog entry.
func Default() Scenario {
	return Catalog[0]
}

// Catalog is the full set of scenarios, in presentation order.
var Catalog = []Scenario{
	{
		ID:    "princess",
		Title: Text{EN: "The Cabin", SK: "Chatrč"},
		Description: Text{
			EN: "A path in the woods. A cabin. A task. But something feels... wrong.",
			SK: "Cesta lesom. Chatrč. Úloha. Ale niečo sa zdá... nesprávne.",
		},
		Goal: Text{EN: "Slay the Princess.", SK: "Zabi Princeznú."},
		Situation: Text{
			EN: "You are on a path in the woods. At the end of that path is a cabin. And in the basement of that cabin is a Princess. You are here to slay her. If you don't, it will be the end of the world. A voice in your head - not your own - whispers these truths. But you cannot remember how you got here, or why you carry a blade that feels heavier than it should.",
			SK: "Si na ceste v lese. Na konci tejto cesty je chatrč. A v pivnici tejto chatrče je Princezná. Si tu, aby si ju zabil. Ak to neurobíš, nastane koniec sveta. Hlas v tvojej hlave - nie tvoj vlastný - šepká tieto pravdy. Ale nepamätáš si, ako si sa sem dostal, ani prečo nesieš čepeľ, ktorá sa zdá ťažšia, než by mala.",
		},
		ImagePrompt: "A path in a dark forest leading to a small lonely wooden cabin, pencil sketch style, mysterious, slay the princess vibe, monochrome, high contrast",
		Secrets: Text{
			EN: `HIDDEN TRUTHS (Player must discover these to truly win):

SECRET 1 - THE VOICE: The narrator/voice guiding the player is not trustworthy. It is an entity called 'The Narrator' that feeds on the cycle of violence. It has manipulated countless 'heroes' before. If the player questions the voice, refuses its commands, or investigates WHO is telling them to kill, they begin to break free.

SECRET 2 - THE PRINCESS: She is not evil. She is a prisoner, chained in the basement for eons. She remembers previous 'heroes' who came to kill her. She may be hostile (from trauma), manipulative (for survival), or pleading - but she holds a crucial truth: killing her does NOT save the world. It resets the cycle.

SECRET 3 - THE BLADE: The blade the player carries is made from the crystallized souls of previous heroes who 'succeeded'. If the player examines it closely, drops it, or refuses to use it, they may hear whispers of the trapped souls warning them.

SECRET 4 - THE TRUE GOAL: To actually WIN, the player must either free the Princess and escape together (breaking the cycle), destroy the cabin itself (the prison), turn the blade against the source of the voice, or convince the Princess to reveal the truth and work together.

SECRET 5 - THE WORLD: There is no 'world' to save. The forest, the path, the cabin - this is the entire reality, a pocket dimension created by the Narrator. The 'end of the world' already happened long ago.

BEHAVIOR: The Princess should react dynamically - she may be terrified, aggressive, seductive, or philosophical depending on the player's approach. She has died thousands of times. She always comes back. Let her hint at the truth if the player shows doubt or kindness.`,
			SK: `SKRYTÉ PRAVDY (Hráč ich musí objaviť, aby skutočne vyhral):

TAJOMSTVO 1 - HLAS: Rozprávač/hlas, ktorý vedie hráča, nie je dôveryhodný. Je to entita nazývaná 'Rozprávač', ktorá sa živí cyklom násilia. Zmanipuloval nespočetných 'hrdinov' predtým. Ak hráč spochybní hlas, odmietne jeho príkazy, alebo skúma KTO mu hovorí, aby zabil, začína sa oslobodzovať.

TAJOMSTVO 2 - PRINCEZNÁ: Nie je zlá. Je väzňom, spútaná v pivnici po eóny. Pamätá si predchádzajúcich 'hrdinov', ktorí ju prišli zabiť. Môže byť nepriateľská (z traumy), manipulatívna (pre prežitie), alebo prosiaca - ale drží kľúčovú pravdu: zabiť ju NEZACHRÁNI svet. Resetuje to cyklus.

TAJOMSTVO 3 - ČEPEĽ: Čepeľ, ktorú hráč nesie, je vyrobená z kryštalizovaných duší predchádzajúcich hrdinov, ktorí 'uspeli'. Ak ju hráč pozorne preskúma, zahodí, alebo odmietne použiť, môže počuť šepoty uväznených duší, ktoré ho varujú.

TAJOMSTVO 4 - SKUTOČNÝ CIEĽ: Aby hráč skutočne VYHRAL, musí buď oslobodiť Princeznú a utiecť spolu (prelomiť cyklus), zničiť samotnú chatrč (väzenie), obrátiť čepeľ proti zdroju hlasu, alebo presvedčiť Princeznú, aby odhalila pravdu a spolupracovali.

TAJOMSTVO 5 - SVET: Neexistuje žiadny 'svet' na záchranu. Les, cesta, chatrč - toto je celá realita, vreckový rozmer vytvorený Rozprávačom. 'Koniec sveta' sa stal už dávno.

SPRÁVANIE: Princezná by mala reagovať dynamicky - môže byť vydesená, agresívna, zvodná, alebo filozofická v závislosti od prístupu hráča. Zomrela tisíckrát. Vždy sa vracia. Nechaj ju naznačiť pravdu, ak hráč prejaví pochybnosti alebo láskavosť.`,
		},
	},
	{
		ID:    "tower",
		Title: Text{EN: "The Silent Tower", SK: "Tichá Veža"},
		Description: Text{
			EN: "Escape the stone prison.",
			SK: "Uteč z kamenného väzenia.",
		},
		Goal: Text{EN: "Find the exit of the Silent Tower.", SK: "Nájdi východ z Tichej veže."},
		Situation: Text{
			EN: "You wake up on a cold stone floor. The room is circular, illuminated by a single shaft of pale light from high above. There is a heavy wooden door to the North and a crumbling staircase spiraling Down.",
			SK: "Prebúdzaš sa na chladnej kamennej dlážke. Miestnosť je kruhová, osvetlená jediným lúčom bledého svetla zhora. Na severe sú ťažké drevené dvere a dole sa vinie rozpadávajúce sa schodisko.",
		},
		ImagePrompt: "Dark stone room, single shaft of light, heavy wooden door, spiral staircase down, minimalism, ink sketch",
	},
	{
		ID:    "cyber",
		Title: Text{EN: "Neon Fugitive", SK: "Neónový Utečenec"},
		Description: Text{
			EN: "Recover the data in a rainy cyberpunk alley.",
			SK: "Získaj dáta v daždivej cyberpunkovej uličke.",
		},
		Goal: Text{EN: "Upload the data drive to the Central Node.", SK: "Nahraj dátový disk do Centrálneho Uzla."},
		Situation: Text{
			EN: "Static fills your vision. You are kneeling in a puddle of oil and rain. Neon signs reflect on the wet asphalt. Beside you lies a deactivated android clutching a silver data drive.",
			SK: "Tvoj zrak je plný šumu. Kľačíš v kaluži oleja a dažďa. Neónové nápisy sa odrážajú na mokrom asfalte. Vedľa teba leží vypnutý android zvierajúci strieborný dátový disk.",
		},
		ImagePrompt: "Cyberpunk alleyway, rain, neon lights reflection, dead android, noir style, high contrast, ink sketch",
	},
	{
		ID:    "space",
		Title: Text{EN: "Event Horizon", SK: "Horizont Udalostí"},
		Description: Text{
			EN: "Survive on a drifting spaceship.",
			SK: "Preži na unášanej vesmírnej lodi.",
		},
		Goal: Text{EN: "Restore oxygen to the Bridge.", SK: "Obnov prívod kyslíka na Mostík."},
		Situation: Text{
			EN: "Silence. Weightlessness. You float in the mess hall of the USG Icarus. Globs of cold coffee drift around you like dark planets. The emergency lights pulse with a slow, red rhythm.",
			SK: "Ticho. Beztiaž. Vznášaš sa v jedálni lode USG Icarus. Kvapky studenej kávy okolo teba plávajú ako temné planéty. Núdzové svetlá pulzujú v pomalom, červenom rytme.",
		},
		ImagePrompt: "Spaceship interior, zero gravity, floating debris, red emergency lighting, sci-fi horror, minimalism",
	},
	{
		ID:    "western",
		Title: Text{EN: "Midnight Train", SK: "Polnočný Vlak"},
		Description: Text{
			EN: "A mystery on the rails.",
			SK: "Záhada na koľajniciach.",
		},
		Goal: Text{EN: "Find your ticket before the Conductor arrives.", SK: "Nájdi svoj lístok skôr, než príde Sprievodca."},
		Situation: Text{
			EN: "The rhythmic clatter of wheels on tracks wakes you. You are sitting in a velvet armchair in an empty train car. Outside, there is only an endless, grey desert. You check your pockets. They are empty.",
			SK: "Rytmické klepotanie kolies na koľajniciach ťa prebudí. Sedíš v zamatovom kresle v prázdnom vagóne. Vonku je len nekonečná, šedá púšť. Prehľadáš si vrecká. Sú prázdne.",
		},
		ImagePrompt: "Old train carriage interior, velvet seats, desert outside window, vintage noir, western mystery, ink sketch",
	},
	{
		ID:    "forest",
		Title: Text{EN: "Whispering Woods", SK: "Šepkajúci Les"},
		Description: Text{
			EN: "Lost in a cursed forest.",
			SK: "Stratený v prekliatom lese.",
		},
		Goal: Text{EN: "Retrieve your true name from the Crow King.", SK: "Získaj svoje pravé meno od Kráľa Vrán."},
		Situation: Text{
			EN: "The smell of pine and rot fills your nose. You stand in a clearing surrounded by trees that seem to lean closer when you aren't looking. A black feather falls slowly into your open hand.",
			SK: "Vôňa borovice a hniloby ti plní nos. Stojíš na čistinke obklopenej stromami, ktoré sa zdajú nakláňať bližšie, keď sa nedívaš. Čierne pierko pomaly padá do tvojej otvorenej dlane.",
		},
		ImagePrompt: "Dark ancient forest, trees with faces, mist, black feather, surreal fantasy, etching style",
	},
}
