package catalog

import "github.com/pixil98/go-inventory/internal/game"

const (
	EffectUseWeapon  = "inventory:useWeapon"
	EffectUseFood    = "inventory:useFood"
	EffectUseMedical = "inventory:useMedical"
)

// Builtin returns the templates every server starts with. Each call returns
// fresh values.
func Builtin() map[string]*game.Template {
	return map[string]*game.Template{
		"weapon_pistol": {
			Name:        "P226 Sidearm",
			Description: "Standard-issue sidearm featuring a polymer frame and steel slide. Chambered in 9mm with a 15-round magazine.",
			Icon:        "images/Pistol.png",
			Weight:      5,
			MaxStack:    1,
			UseEffect:   EffectUseWeapon,
			Attributes: game.Attributes{
				"type": "weapon", "condition": 100.0, "ammo": "15/15", "accuracy": 75.0, "recoil": "Low",
			},
		},
		"weapon_railgun": {
			Name:        "Coil Railgun",
			Description: "Electromagnetic weapon that accelerates projectiles to hypervelocity. Requires specialized power cells.",
			Icon:        "images/Railgun.png",
			Weight:      12,
			MaxStack:    1,
			UseEffect:   EffectUseWeapon,
			Attributes: game.Attributes{
				"type": "weapon", "condition": 100.0, "ammo": "1/1", "accuracy": 95.0, "recoil": "High", "charge_time": "2.0s",
			},
		},
		"weapon_carbinerifle_mk2": {
			Name:        "Carbine Rifle",
			Description: "Military-grade assault rifle with modular design and advanced optics. 30-round magazine.",
			Icon:        "images/AssaultRifle.png",
			Weight:      8,
			MaxStack:    1,
			UseEffect:   EffectUseWeapon,
			Attributes: game.Attributes{
				"type": "weapon", "condition": 100.0, "ammo": "30/30", "accuracy": 85.0, "recoil": "Medium", "fire_rate": "Auto",
			},
		},
		"weapon_rpg": {
			Name:        "RPG-7",
			Description: "Shoulder-fired anti-tank launcher. Handle with extreme caution.",
			Icon:        "images/RPG.png",
			Weight:      15,
			MaxStack:    1,
			UseEffect:   EffectUseWeapon,
			Attributes: game.Attributes{
				"type": "weapon", "condition": 100.0, "ammo": "1/1", "accuracy": 70.0, "recoil": "Extreme", "blast_radius": "Large",
			},
		},
		"food_burger": {
			Name:        "Burger",
			Description: "A classy burger.",
			Icon:        "images/Burger.png",
			Weight:      5,
			MaxStack:    12,
			UseEffect:   EffectUseFood,
			Consumable:  true,
			Attributes:  game.Attributes{"hunger_gain": 25.0},
		},
		"medical_bandage": {
			Name:        "Bandage",
			Description: "Sterile gauze roll. Stops bleeding and restores a little health.",
			Icon:        "images/Bandage.png",
			Weight:      0.2,
			MaxStack:    10,
			UseEffect:   EffectUseMedical,
			Consumable:  true,
			Attributes:  game.Attributes{"type": "medical", "healing": 15.0},
		},
		"armor_kevlar": {
			Name:        "Kevlar Vest",
			Description: "Soft body armor rated against handgun rounds.",
			Icon:        "images/Vest.png",
			Weight:      8,
			MaxStack:    1,
			Attributes: game.Attributes{
				"type": "armor", "protection": 40.0, "durability": 100.0, "armor_rating": 40.0,
			},
		},
		"hat_beanie": {
			Name:       "Beanie",
			Icon:       "images/Beanie.png",
			Weight:     0.3,
			MaxStack:   1,
			Attributes: game.Attributes{"type": "hat", "armor_rating": 1.0},
		},
		"shoes_boots": {
			Name:       "Work Boots",
			Icon:       "images/Boots.png",
			Weight:     2,
			MaxStack:   1,
			Attributes: game.Attributes{"type": "boots", "armor_rating": 2.0},
		},
		"bag_backpack": {
			Name:       "Backpack",
			Icon:       "images/Backpack.png",
			Weight:     1.5,
			MaxStack:   1,
			Attributes: game.Attributes{"type": "bag"},
		},
	}
}
