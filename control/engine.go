package control

// Clip is a read-only view of one clip in the playback engine.
type Clip interface {
	Track() int
	Slot() int
	Color() int // engine color index, mapped through launchpad.AccentColor

	IsLaunched() bool
	IsPlaying() bool
	WillStart() bool
	WillStop() bool
	IsRecording() bool

	NoteOnBehavior() LaunchBehavior
	NoteOffBehavior() LaunchBehavior
}

// Queries are the read-only questions a surface asks the engine.
type Queries interface {
	Clip(track, slot int) (Clip, bool)
	Clips() []Clip
	FocusedClips() []Clip
	HasFocusedClips() bool
	PlayingTracks() []int
	HasPlayingTracks() bool
	RecordingTracks() []int
	HasRecordingTracks() bool
	MaxTrackAndSlot() (track, slot int)

	HasClipOnTrack(track int) bool
	IsAnyPlayingOnTrack(track int) bool
	IsAnyTriggeringOnTrack(track int) bool
	IsAnyNotStoppedOnTrack(track int) bool
	IsBulkReleasingOnTrack(track int) bool
	IsAnyReleasingOnTrack(track int) bool
	IsAllSoloingOnTrack(track int) bool
	IsAllMutedOnTrack(track int) bool
	IsAnyRecordingOnTrack(track int) bool
	IsBulkTriggeringOnSlot(slot int) bool

	LaunchedClipWithLowestSlotOnTrack(track int) (Clip, bool)
	ClipWithLowestSlotOnTrack(track int) (Clip, bool)
}

// Commands mutate the engine.
type Commands interface {
	LaunchClip(track, slot int)
	StopClip(track, slot int)
	StopTrack(track int)
	LaunchScene(slot int)

	ArmClip(track, slot int)
	DisarmClip(track, slot int)
	ArmTrack(track int)
	DisarmTrack(track int)

	SoloTrack(track int)
	UnsoloTrack(track int)
	MuteTrack(track int)
	UnmuteTrack(track int)

	ClearActivePattern(track, slot int)
	DuplicateActivePattern(track, slot int)
	ToggleQuantization(track, slot int)
}

// NoteSink receives performance data forwarded verbatim from a surface.
type NoteSink interface {
	ReceiveNoteOn(note, velocity, channel uint8, timestamp int32)
	ReceiveNoteOff(note, velocity, channel uint8, timestamp int32)
	ReceivePolyAftertouch(note, pressure, channel uint8, timestamp int32)
	ReceiveChannelAftertouch(pressure, channel uint8, timestamp int32)
}

// Engine is everything a surface needs from the playback engine.
type Engine interface {
	Queries
	Commands
	NoteSink
}
