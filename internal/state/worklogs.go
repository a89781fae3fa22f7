package state

import "github.com/vbonduro/marineit/internal/domain"

// WorkLogInput is a work log as submitted by the user; id and staff name are
// assigned by the Store.
type WorkLogInput struct {
	Date            string
	Time            string
	Location        string
	TaskDescription string
	Status          domain.TaskStatus
}

func (s *Store) AddWorkLog(in WorkLogInput) (domain.WorkLog, domain.AppData) {
	log := domain.WorkLog{
		ID:              s.newID("wl"),
		Date:            in.Date,
		Time:            in.Time,
		StaffName:       s.operator,
		Location:        in.Location,
		TaskDescription: in.TaskDescription,
		Status:          in.Status,
	}
	if log.Status == "" {
		log.Status = domain.StatusPending
	}
	snap := s.commit(ChangeCreate, CollectionWorkLogs, log.ID, func(cur domain.AppData) (domain.AppData, bool) {
		cur.WorkLogs = prepend(cur.WorkLogs, log)
		return cur, true
	})
	return log, snap
}

// UpdateWorkLog replaces the work log with the same id. Unknown ids are ignored.
func (s *Store) UpdateWorkLog(updated domain.WorkLog) domain.AppData {
	return s.EditWorkLog(updated.ID, func(domain.WorkLog) domain.WorkLog { return updated })
}

// EditWorkLog rewrites the stored work log through edit within one commit, so
// edit sees the latest record. The id cannot change. edit runs under the
// store lock and must not call the Store.
func (s *Store) EditWorkLog(id string, edit func(old domain.WorkLog) domain.WorkLog) domain.AppData {
	return s.commit(ChangeUpdate, CollectionWorkLogs, id, func(cur domain.AppData) (domain.AppData, bool) {
		logs, ok := replaceWhere(cur.WorkLogs, workLogID(id), func(old domain.WorkLog) domain.WorkLog {
			l := edit(old)
			l.ID = id
			return l
		})
		cur.WorkLogs = logs
		return cur, ok
	})
}

func (s *Store) SetWorkLogStatus(id string, status domain.TaskStatus) domain.AppData {
	return s.commit(ChangeStatus, CollectionWorkLogs, id, func(cur domain.AppData) (domain.AppData, bool) {
		logs, ok := replaceWhere(cur.WorkLogs, workLogID(id), func(l domain.WorkLog) domain.WorkLog {
			l.Status = status
			return l
		})
		cur.WorkLogs = logs
		return cur, ok
	})
}

func (s *Store) DeleteWorkLog(id string) domain.AppData {
	return s.commit(ChangeDelete, CollectionWorkLogs, id, func(cur domain.AppData) (domain.AppData, bool) {
		logs, ok := removeWhere(cur.WorkLogs, workLogID(id))
		cur.WorkLogs = logs
		return cur, ok
	})
}

func workLogID(id string) func(domain.WorkLog) bool {
	return func(l domain.WorkLog) bool { return l.ID == id }
}
