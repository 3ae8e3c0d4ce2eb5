package crdt

import (
	"github.com/iudanet/progresskeeper/internal/models"
)

// Merge объединяет локальный и удаленный наборы записей одной коллекции
// по правилу LWW (Last-Write-Wins) для записи целиком:
// - запись, отсутствующая локально, берется с сервера
// - при большем или равном LastModified побеждает удаленная запись
// Функция чистая: входные карты не изменяются, результат содержит копии.
// Операция идемпотентна и не зависит от порядка обхода карт.
func Merge(local, remote map[string]*models.Entry) map[string]*models.Entry {
	result := make(map[string]*models.Entry, len(local)+len(remote))

	for id, entry := range local {
		result[id] = entry.Clone()
	}

	for id, remoteEntry := range remote {
		existing, exists := result[id]

		// При равных timestamp побеждает сервер
		if !exists || RemoteWins(existing, remoteEntry) {
			result[id] = remoteEntry.Clone()
		}
	}

	return result
}

// RemoteWins возвращает true, если удаленная версия должна заменить локальную.
func RemoteWins(local, remote *models.Entry) bool {
	return remote.LastModified >= local.LastModified
}

// LocalWins возвращает ID локальных записей, которые строго новее удаленных
// или отсутствуют на сервере. Такие записи после слияния нужно отправить на сервер.
func LocalWins(local, remote map[string]*models.Entry) []string {
	var ids []string

	for id, localEntry := range local {
		remoteEntry, exists := remote[id]
		if !exists || !RemoteWins(localEntry, remoteEntry) {
			ids = append(ids, id)
		}
	}

	return ids
}

// Index строит карту id -> entry. При дублях остается более новая запись.
func Index(entries []*models.Entry) map[string]*models.Entry {
	result := make(map[string]*models.Entry, len(entries))

	for _, entry := range entries {
		existing, exists := result[entry.ID]
		if !exists || entry.LastModified >= existing.LastModified {
			result[entry.ID] = entry
		}
	}

	return result
}
