package services

import "github.com/comitanigiacomo/kanso-weekly-engine/internal/core/domain"

func everyDay() []bool {
	return []bool{true, true, true, true, true, true, true}
}

func weekdaysOnly() []bool {
	return []bool{true, true, true, true, true, false, false}
}

func leaf(id, name, title string, order int) *domain.Subtask {
	return &domain.Subtask{ID: id, Name: name, Title: title, Order: order, Kind: domain.SubtaskRotating}
}

// DefaultSequence is the routine seeded on first run.
func DefaultSequence() []*domain.WeeklyTask {
	return []*domain.WeeklyTask{
		{
			ID:             "weekly_ejercicio",
			Name:           "Ejercicio",
			PlannedDays:    5,
			WeeklySchedule: weekdaysOnly(),
			Order:          0,
			Behavior:       domain.BehaviorGeneric,
		},
		{
			ID:              "weekly_limpieza",
			Name:            "Limpieza",
			PlannedDays:     7,
			WeeklySchedule:  everyDay(),
			Order:           1,
			Behavior:        domain.BehaviorGeneric,
			SubtaskRotation: domain.RotationWeekly,
			Subtasks: []*domain.Subtask{
				leaf("sub_limpieza_cocina", "Cocina", "", 0),
				leaf("sub_limpieza_bano", "Baño", "", 1),
				leaf("sub_limpieza_habitacion", "Habitación", "", 2),
				leaf("sub_limpieza_sala", "Sala", "", 3),
			},
		},
		{
			ID:              "weekly_leer",
			Name:            domain.TaskNameLeer,
			PlannedDays:     7,
			WeeklySchedule:  everyDay(),
			Order:           2,
			Behavior:        domain.BehaviorGeneric,
			HistoryType:     domain.ItemBook,
			SubtaskRotation: domain.RotationWeekly,
			Subtasks: []*domain.Subtask{
				leaf("sub_leer_kindle", "Kindle", "", 0),
				leaf("sub_leer_fisico", "Libro físico", "", 1),
			},
		},
		{
			ID:             domain.MacTaskID,
			Name:           domain.TaskNameMac,
			PlannedDays:    5,
			WeeklySchedule: weekdaysOnly(),
			Order:          3,
			Behavior:       domain.BehaviorNestedCourseTree,
			HistoryType:    domain.ItemCourse,
			Subtasks: []*domain.Subtask{
				leaf("sub_mac_laptop", "Laptop", "", 0),
				leaf("sub_mac_algoritmos", "Algoritmos", "", 1),
				{ID: domain.SubtaskMacPracticas, Name: "Practicas", Order: 2, Kind: domain.SubtaskPool, Subtasks: []*domain.Subtask{}},
				{ID: domain.SubtaskMacRelated, Name: "Related/IA", Order: 3, Kind: domain.SubtaskPool, Subtasks: []*domain.Subtask{}},
			},
		},
		{
			ID:              "weekly_juego",
			Name:            domain.TaskNameJuego,
			PlannedDays:     3,
			WeeklySchedule:  everyDay(),
			Order:           4,
			Behavior:        domain.BehaviorGeneric,
			HistoryType:     domain.ItemGame,
			SubtaskRotation: domain.RotationWeekly,
			Subtasks: []*domain.Subtask{
				leaf("sub_juego_switch", "Switch", "", 0),
				leaf("sub_juego_pc", "PC", "", 1),
			},
		},
		{
			ID:              "weekly_idiomas",
			Name:            "Idiomas",
			PlannedDays:     7,
			WeeklySchedule:  everyDay(),
			Order:           5,
			Behavior:        domain.BehaviorGeneric,
			SubtaskRotation: domain.RotationDailyOrCompletion,
			Subtasks: []*domain.Subtask{
				leaf("sub_idiomas_ingles", "Inglés", "", 0),
				leaf("sub_idiomas_frances", "Francés", "", 1),
			},
		},
		{
			ID:              "weekly_lista",
			Name:            domain.TaskNameLista,
			PlannedDays:     7,
			WeeklySchedule:  everyDay(),
			Order:           6,
			Behavior:        domain.BehaviorRandomPick,
			SubtaskRotation: domain.RotationOnStartOrCompletion,
			Subtasks: []*domain.Subtask{
				leaf("sub_lista_casa", "Casa", "", 0),
				leaf("sub_lista_personal", "Personal", "", 1),
				leaf("sub_lista_trabajo", "Trabajo", "", 2),
			},
		},
	}
}
