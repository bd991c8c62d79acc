// Package catalog partitions the service day into fixed-width slots.
package catalog

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// Catalog immutable ordered sequence of slots for one service day
type Catalog struct {
	slots       []domain.TimeSlot
	positions   map[domain.SlotKey]int
	boundaries  map[int]int // minutes -> index of the slot starting there (len(slots) for day end)
	slotMinutes int
}

// New строит каталог от dayStart до dayEnd с шагом slotMinutes
// Последний неполный слот отбрасывается
func New(dayStart, dayEnd types.TimeString, slotMinutes int) (*Catalog, error) {
	if err := dayStart.Validate(); err != nil {
		return nil, fmt.Errorf("%w: day start: %v", ErrInvalidConfig, err)
	}
	if err := dayEnd.Validate(); err != nil {
		return nil, fmt.Errorf("%w: day end: %v", ErrInvalidConfig, err)
	}
	if slotMinutes <= 0 {
		return nil, fmt.Errorf("%w: slot width must be positive", ErrInvalidConfig)
	}
	if !dayStart.IsBefore(dayEnd) {
		return nil, fmt.Errorf("%w: day start %s must be before day end %s", ErrInvalidConfig, dayStart, dayEnd)
	}

	c := &Catalog{
		positions:   make(map[domain.SlotKey]int),
		boundaries:  make(map[int]int),
		slotMinutes: slotMinutes,
	}

	current := dayStart
	for {
		next, err := current.AddMinutes(slotMinutes)
		if err != nil || next.IsAfter(dayEnd) {
			break
		}
		slot := domain.TimeSlot{Start: current, End: next}
		c.boundaries[current.Minutes()] = len(c.slots)
		c.positions[slot.Key()] = len(c.slots)
		c.slots = append(c.slots, slot)
		current = next
	}

	if len(c.slots) == 0 {
		return nil, fmt.Errorf("%w: slot width %d does not fit into %s-%s", ErrInvalidConfig, slotMinutes, dayStart, dayEnd)
	}
	c.boundaries[current.Minutes()] = len(c.slots)

	return c, nil
}

// Slots возвращает копию всех слотов в порядке каталога
func (c *Catalog) Slots() []domain.TimeSlot {
	out := make([]domain.TimeSlot, len(c.slots))
	copy(out, c.slots)
	return out
}

// SlotWidth возвращает ширину одного слота
func (c *Catalog) SlotWidth() time.Duration {
	return time.Duration(c.slotMinutes) * time.Minute
}

// Contains проверяет, что ключ принадлежит каталогу
func (c *Catalog) Contains(key domain.SlotKey) bool {
	_, ok := c.positions[key]
	return ok
}

// Position возвращает порядковый номер слота, -1 если ключ не из каталога
func (c *Catalog) Position(key domain.SlotKey) int {
	pos, ok := c.positions[key]
	if !ok {
		return -1
	}
	return pos
}

// Slot возвращает слот по ключу
func (c *Catalog) Slot(key domain.SlotKey) (domain.TimeSlot, bool) {
	pos, ok := c.positions[key]
	if !ok {
		return domain.TimeSlot{}, false
	}
	return c.slots[pos], true
}

// SlotsCoveringRange возвращает ключи слотов, целиком лежащих в [start, end), в порядке каталога
// Обе границы должны совпадать с границами слотов; при start == end результат пустой
func (c *Catalog) SlotsCoveringRange(start, end types.TimeString) ([]domain.SlotKey, error) {
	if err := start.Validate(); err != nil {
		return nil, fmt.Errorf("%w: start: %v", ErrInvalidRange, err)
	}
	if err := end.Validate(); err != nil {
		return nil, fmt.Errorf("%w: end: %v", ErrInvalidRange, err)
	}
	if end.IsBefore(start) {
		return nil, fmt.Errorf("%w: end %s is before start %s", ErrInvalidRange, end, start)
	}

	from, ok := c.boundaries[start.Minutes()]
	if !ok {
		return nil, fmt.Errorf("%w: start %s is not a slot boundary", ErrInvalidRange, start)
	}
	to, ok := c.boundaries[end.Minutes()]
	if !ok {
		return nil, fmt.Errorf("%w: end %s is not a slot boundary", ErrInvalidRange, end)
	}

	keys := make([]domain.SlotKey, 0, to-from)
	for i := from; i < to; i++ {
		keys = append(keys, c.slots[i].Key())
	}
	return keys, nil
}

// AdditionalSlots возвращает слоты, начинающиеся строго между currentEnd и newEnd
// Пустой результат, если newEnd <= currentEnd
func (c *Catalog) AdditionalSlots(currentEnd, newEnd types.TimeString) []domain.SlotKey {
	keys := make([]domain.SlotKey, 0)
	if !newEnd.IsAfter(currentEnd) {
		return keys
	}

	for _, slot := range c.slots {
		if slot.Start.IsAfter(currentEnd) && slot.Start.IsBefore(newEnd) {
			keys = append(keys, slot.Key())
		}
	}
	return keys
}

// KeysBetween возвращает ключи от from до to включительно в порядке каталога
func (c *Catalog) KeysBetween(from, to domain.SlotKey) []domain.SlotKey {
	start, end := c.Position(from), c.Position(to)
	if start < 0 || end < 0 || end < start {
		return []domain.SlotKey{}
	}

	keys := make([]domain.SlotKey, 0, end-start+1)
	for i := start; i <= end; i++ {
		keys = append(keys, c.slots[i].Key())
	}
	return keys
}
