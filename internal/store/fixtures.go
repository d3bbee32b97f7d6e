package store

import (
	"time"

	"github.com/ntexier-belenos/Sistema-Cloud/internal/model"
)

// Fixtures is the seed data a store starts from when durable storage is
// empty.
type Fixtures struct {
	Projects        []model.Project
	Machines        []model.Machine
	SafetyFunctions []model.SafetyFunction
	SubComponents   []model.SubComponent
	Users           []model.User
}

func ts(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T { return &v }

// DefaultFixtures returns the compiled-in demo dataset. Each call returns
// fresh slices so stores never share backing arrays.
func DefaultFixtures() Fixtures {
	return Fixtures{
		Projects: []model.Project{
			{
				ID:          "1",
				Name:        "Ligne d'assemblage A",
				Description: "Ligne d'assemblage principale pour les moteurs électriques",
				CreatedAt:   ts("2023-05-01T10:30:00Z"),
				UpdatedAt:   ts("2023-05-01T10:30:00Z"),
			},
			{
				ID:          "2",
				Name:        "Cellule robotisée B",
				Description: "Cellule avec robots collaboratifs pour l'assemblage de précision",
				CreatedAt:   ts("2023-05-10T14:20:00Z"),
				UpdatedAt:   ts("2023-05-10T14:20:00Z"),
			},
			{
				ID:          "3",
				Name:        "Zone de tests",
				Description: "Zone d'essais et de tests fonctionnels",
				CreatedAt:   ts("2023-05-15T09:45:00Z"),
				UpdatedAt:   ts("2023-05-15T09:45:00Z"),
			},
		},
		Machines: []model.Machine{
			{
				ID:                  "1",
				ProjectID:           "1",
				Name:                "Robot 1",
				Description:         "Robot articulé 6 axes",
				Model:               "KR 1000",
				SerialNumber:        "KR1000-123456",
				Manufacturer:        "KUKA",
				YearOfManufacture:   2020,
				Status:              model.StatusOperational,
				LastMaintenanceDate: ts("2023-04-15T00:00:00Z"),
				CreatedAt:           ts("2023-05-01T11:00:00Z"),
				UpdatedAt:           ts("2023-05-01T11:00:00Z"),
			},
			{
				ID:                  "2",
				ProjectID:           "1",
				Name:                "Convoyeur A",
				Description:         "Convoyeur principal",
				Model:               "CV-2000",
				SerialNumber:        "CV2000-78910",
				Manufacturer:        "ConveyTech",
				YearOfManufacture:   2019,
				Status:              model.StatusMaintenance,
				LastMaintenanceDate: ts("2023-05-20T00:00:00Z"),
				CreatedAt:           ts("2023-05-01T11:15:00Z"),
				UpdatedAt:           ts("2023-05-20T10:00:00Z"),
			},
			{
				ID:                  "3",
				ProjectID:           "2",
				Name:                "Cobot 1",
				Description:         "Robot collaboratif",
				Model:               "UR10e",
				SerialNumber:        "UR10E-567890",
				Manufacturer:        "Universal Robots",
				YearOfManufacture:   2021,
				Status:              model.StatusOperational,
				LastMaintenanceDate: ts("2023-05-10T00:00:00Z"),
				CreatedAt:           ts("2023-05-10T14:30:00Z"),
				UpdatedAt:           ts("2023-05-10T14:30:00Z"),
			},
			{
				ID:                  "4",
				ProjectID:           "3",
				Name:                "Banc de test",
				Description:         "Banc de test pour moteurs électriques",
				Model:               "BT-5000",
				SerialNumber:        "BT5000-112233",
				Manufacturer:        "TestEquip",
				YearOfManufacture:   2018,
				Status:              model.StatusOffline,
				LastMaintenanceDate: ts("2023-04-01T00:00:00Z"),
				CreatedAt:           ts("2023-05-15T10:00:00Z"),
				UpdatedAt:           ts("2023-05-15T10:00:00Z"),
			},
		},
		SafetyFunctions: []model.SafetyFunction{
			{
				ID:          "1",
				MachineID:   "1",
				Name:        "Arrêt d'urgence",
				Description: "Fonction d'arrêt d'urgence du robot",
				Type:        "emergency_stop",
				PLRequired:  model.PLe,
				PLAchieved:  ptr(model.PLe),
				Category:    ptr(4),
				Standards:   []string{"ISO 13849-1", "IEC 60204-1"},
				Status:      model.SFStatusValidated,
				ValidatedBy: ptr("Jean Dupont"),
				ValidatedAt: ptr(ts("2023-05-10T15:30:00Z")),
				CreatedAt:   ts("2023-05-02T09:00:00Z"),
				UpdatedAt:   ts("2023-05-10T15:30:00Z"),
			},
			{
				ID:          "2",
				MachineID:   "1",
				Name:        "Surveillance de vitesse",
				Description: "Fonction de surveillance de vitesse sûre",
				Type:        "speed_monitoring",
				PLRequired:  model.PLd,
				PLAchieved:  ptr(model.PLd),
				Category:    ptr(3),
				Standards:   []string{"ISO 13849-1"},
				Status:      model.SFStatusValidated,
				ValidatedBy: ptr("Jean Dupont"),
				ValidatedAt: ptr(ts("2023-05-10T15:35:00Z")),
				CreatedAt:   ts("2023-05-02T09:30:00Z"),
				UpdatedAt:   ts("2023-05-10T15:35:00Z"),
			},
			{
				ID:          "3",
				MachineID:   "3",
				Name:        "Détection de présence",
				Description: "Détection de présence humaine dans la zone de travail",
				Type:        "presence_detection",
				PLRequired:  model.PLd,
				Standards:   []string{"ISO 13849-1", "ISO/TS 15066"},
				Status:      model.SFStatusInProgress,
				CreatedAt:   ts("2023-05-11T11:00:00Z"),
				UpdatedAt:   ts("2023-05-11T11:00:00Z"),
			},
		},
		SubComponents: []model.SubComponent{
			{
				ID:               "1",
				SafetyFunctionID: "1",
				Name:             "Bouton d'arrêt d'urgence",
				Description:      "Bouton d'arrêt d'urgence principal",
				Type:             model.TypeSensor,
				Category:         ptr(4),
				MTTFd:            ptr(100.0),
				DCavg:            ptr(99.0),
				CCF:              ptr(80.0),
				Architecture:     ptr("1oo1"),
				CreatedAt:        ts("2023-05-02T09:05:00Z"),
				UpdatedAt:        ts("2023-05-02T09:05:00Z"),
			},
			{
				ID:               "2",
				SafetyFunctionID: "1",
				Name:             "Relais de sécurité",
				Description:      "Relais de sécurité pour l'arrêt d'urgence",
				Type:             model.TypeLogic,
				Category:         ptr(4),
				MTTFd:            ptr(50.0),
				DCavg:            ptr(99.0),
				CCF:              ptr(80.0),
				Architecture:     ptr("1oo2"),
				CreatedAt:        ts("2023-05-02T09:10:00Z"),
				UpdatedAt:        ts("2023-05-02T09:10:00Z"),
			},
			{
				ID:               "3",
				SafetyFunctionID: "1",
				Name:             "Contacteur de puissance",
				Description:      "Contacteur de coupure d'alimentation",
				Type:             model.TypeActuator,
				Category:         ptr(4),
				MTTFd:            ptr(30.0),
				DCavg:            ptr(99.0),
				CCF:              ptr(80.0),
				Architecture:     ptr("1oo2"),
				CreatedAt:        ts("2023-05-02T09:15:00Z"),
				UpdatedAt:        ts("2023-05-02T09:15:00Z"),
			},
			{
				ID:               "4",
				SafetyFunctionID: "2",
				Name:             "Encodeur de sécurité",
				Description:      "Encodeur pour la surveillance de vitesse",
				Type:             model.TypeSensor,
				Category:         ptr(3),
				MTTFd:            ptr(40.0),
				DCavg:            ptr(90.0),
				CCF:              ptr(70.0),
				Architecture:     ptr("1oo1"),
				CreatedAt:        ts("2023-05-02T09:35:00Z"),
				UpdatedAt:        ts("2023-05-02T09:35:00Z"),
			},
			{
				ID:               "5",
				SafetyFunctionID: "3",
				Name:             "Scanner laser de sécurité",
				Description:      "Scanner laser pour la détection de présence",
				Type:             model.TypeSensor,
				CreatedAt:        ts("2023-05-11T11:05:00Z"),
				UpdatedAt:        ts("2023-05-11T11:05:00Z"),
			},
		},
		Users: []model.User{
			{
				ID:        "1",
				Email:     "admin@example.com",
				FirstName: "Admin",
				LastName:  "User",
				Role:      model.RoleAdmin,
				CreatedAt: ts("2023-01-01T00:00:00Z"),
			},
			{
				ID:        "2",
				Email:     "jean.dupont@example.com",
				FirstName: "Jean",
				LastName:  "Dupont",
				Role:      model.RoleUser,
				CreatedAt: ts("2023-01-15T00:00:00Z"),
			},
			{
				ID:        "3",
				Email:     "marie.martin@example.com",
				FirstName: "Marie",
				LastName:  "Martin",
				Role:      model.RoleUser,
				CreatedAt: ts("2023-02-01T00:00:00Z"),
			},
		},
	}
}
