package ui

import (
	"time"

	"github.com/hako/durafmt"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys double as the English text.
const (
	msgFeed       = "Feed"
	msgPlay       = "Play"
	msgRest       = "Rest"
	msgClean      = "Clean"
	msgMenu       = "Menu"
	msgStatus     = "H:%d F:%d E:%d  HP:%d/%d"
	msgSubtitle   = "Tamagotchi"
	msgStartNew   = "Start New"
	msgLoad       = "Load"
	msgReset      = "Reset"
	msgCleared    = "Save cleared!"
	msgPaused     = "PAUSED"
	msgHunger     = "Hunger: %d"
	msgFun        = "Fun: %d"
	msgEnergy     = "Energy: %d"
	msgHP         = "HP: %d/%d"
	msgAge        = "Age: %s"
	msgResume     = "Resume"
	msgSaveResume = "Save & Resume"
	msgSaveExit   = "Save & Exit"
	msgSaved      = "Saved!"
	msgDied       = "Your fish has died"
	msgReached    = "It reached %s"
	msgNewFish    = "New Fish"
)

var german = map[string]string{
	msgFeed:       "Futter",
	msgPlay:       "Spielen",
	msgRest:       "Schlafen",
	msgClean:      "Putzen",
	msgMenu:       "Menue",
	msgStatus:     "H:%d S:%d E:%d  LP:%d/%d",
	msgSubtitle:   "Tamagotchi",
	msgStartNew:   "Neues Spiel",
	msgLoad:       "Laden",
	msgReset:      "Loeschen",
	msgCleared:    "Spielstand geloescht!",
	msgPaused:     "PAUSE",
	msgHunger:     "Hunger: %d",
	msgFun:        "Spass: %d",
	msgEnergy:     "Energie: %d",
	msgHP:         "LP: %d/%d",
	msgAge:        "Alter: %s",
	msgResume:     "Weiter",
	msgSaveResume: "Speichern & weiter",
	msgSaveExit:   "Speichern & Ende",
	msgSaved:      "Gespeichert!",
	msgDied:       "Dein Fisch ist gestorben",
	msgReached:    "Er wurde %s alt",
	msgNewFish:    "Neuer Fisch",
}

var (
	unitsEN, _ = durafmt.DefaultUnitsCoder.Decode("y:y,wk:wk,d:d,h:h,m:m,s:s,ms:ms,us:us")
	unitsDE, _ = durafmt.DefaultUnitsCoder.Decode("J:J,Wo:Wo,T:T,h:h,m:m,s:s,ms:ms,us:us")
)

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, de := range german {
		_ = b.SetString(language.English, key, key)
		_ = b.SetString(language.German, key, de)
	}
	return b
}

// Labels renders user-visible strings in one language.
type Labels struct {
	p     *message.Printer
	units durafmt.Units
}

// NewLabels returns labels for a BCP 47 tag; unknown tags fall back to
// English.
func NewLabels(lang string) Labels {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	units := unitsEN
	if base, _ := tag.Base(); base.String() == "de" {
		tag = language.German
		units = unitsDE
	} else {
		tag = language.English
	}
	return Labels{p: message.NewPrinter(tag, message.Catalog(newCatalog())), units: units}
}

func (l Labels) T(key string, args ...any) string {
	return l.p.Sprintf(key, args...)
}

// Age formats a pet age with the two most significant units.
func (l Labels) Age(d time.Duration) string {
	if d < time.Second {
		return "0 " + l.units.Second.Plural
	}
	return durafmt.Parse(d.Truncate(time.Second)).LimitFirstN(2).Format(l.units)
}
