package vo

type (
	normalNumberVariableIndex      struct{}
	spareNumberVariableIndex       struct{}
	stringVariableIndex            struct{}
	systemVariableIndex            struct{}
	commonEventID                  struct{}
	mapEventID                     struct{}
	mapEventVariableIndex          struct{}
	commonEventVariableIndex       struct{}
	commonEventReturnVariableIndex struct{}
	commonEventArgCount            struct{}
	numberArgIndex                 struct{}
	stringArgIndex                 struct{}
	proxyPort                      struct{}
	randomVariableValue            struct{}
	dbTypeID                       struct{}
	dbDataID                       struct{}
	dbItemID                       struct{}
	pictureNumber                  struct{}
	moveFrames                     struct{}
	loopCount                      struct{}
	indent                         struct{}
)

func (normalNumberVariableIndex) bounds() (string, int, int) { return "NormalNumberVariableIndex", 0, 99999 }
func (spareNumberVariableIndex) bounds() (string, int, int)  { return "SpareNumberVariableIndex", 0, 99999 }
func (stringVariableIndex) bounds() (string, int, int)       { return "StringVariableIndex", 0, 99999 }
func (systemVariableIndex) bounds() (string, int, int)       { return "SystemVariableIndex", 0, 99999 }
func (commonEventID) bounds() (string, int, int)             { return "CommonEventID", 0, 9999 }
func (mapEventID) bounds() (string, int, int)                { return "MapEventID", 0, 9999 }
func (mapEventVariableIndex) bounds() (string, int, int)     { return "MapEventVariableIndex", 0, 9 }
func (commonEventVariableIndex) bounds() (string, int, int)  { return "CommonEventVariableIndex", 0, 99 }
func (commonEventReturnVariableIndex) bounds() (string, int, int) {
	return "CommonEventReturnVariableIndex", -1, 99
}
func (commonEventArgCount) bounds() (string, int, int) { return "CommonEventArgCount", 0, 4 }
func (numberArgIndex) bounds() (string, int, int)      { return "NumberArgIndex", 0, 4 }
func (stringArgIndex) bounds() (string, int, int)      { return "StringArgIndex", 0, 4 }
func (proxyPort) bounds() (string, int, int)           { return "ProxyPort", -1, 65535 }
func (randomVariableValue) bounds() (string, int, int) { return "RandomVariableValue", 0, 999999 }
func (dbTypeID) bounds() (string, int, int)            { return "DBTypeID", 0, 9999 }
func (dbDataID) bounds() (string, int, int)            { return "DBDataID", 0, 9999 }
func (dbItemID) bounds() (string, int, int)            { return "DBItemID", 0, 9999 }
func (pictureNumber) bounds() (string, int, int)       { return "PictureNumber", 0, 999999 }
func (moveFrames) bounds() (string, int, int)          { return "MoveFrames", 0, 999999 }
func (loopCount) bounds() (string, int, int)           { return "LoopCount", 0, 999999 }
func (indent) bounds() (string, int, int)              { return "Indent", 0, 99 }

// Integer value object kinds.
type (
	NormalNumberVariableIndex      = Int[normalNumberVariableIndex]
	SpareNumberVariableIndex       = Int[spareNumberVariableIndex]
	StringVariableIndex            = Int[stringVariableIndex]
	SystemVariableIndex            = Int[systemVariableIndex]
	CommonEventID                  = Int[commonEventID]
	MapEventID                     = Int[mapEventID]
	MapEventVariableIndex          = Int[mapEventVariableIndex]
	CommonEventVariableIndex       = Int[commonEventVariableIndex]
	CommonEventReturnVariableIndex = Int[commonEventReturnVariableIndex]
	CommonEventArgCount            = Int[commonEventArgCount]
	NumberArgIndex                 = Int[numberArgIndex]
	StringArgIndex                 = Int[stringArgIndex]
	ProxyPort                      = Int[proxyPort]
	RandomVariableValue            = Int[randomVariableValue]
	DBTypeID                       = Int[dbTypeID]
	DBDataID                       = Int[dbDataID]
	DBItemID                       = Int[dbItemID]
	PictureNumber                  = Int[pictureNumber]
	MoveFrames                     = Int[moveFrames]
	LoopCount                      = Int[loopCount]
	Indent                         = Int[indent]
)

func NewNormalNumberVariableIndex(v int) (NormalNumberVariableIndex, error) {
	return newInt[normalNumberVariableIndex](v)
}

func NewSpareNumberVariableIndex(v int) (SpareNumberVariableIndex, error) {
	return newInt[spareNumberVariableIndex](v)
}

func NewStringVariableIndex(v int) (StringVariableIndex, error) {
	return newInt[stringVariableIndex](v)
}

func NewSystemVariableIndex(v int) (SystemVariableIndex, error) {
	return newInt[systemVariableIndex](v)
}

func NewCommonEventID(v int) (CommonEventID, error) { return newInt[commonEventID](v) }

func NewMapEventID(v int) (MapEventID, error) { return newInt[mapEventID](v) }

func NewMapEventVariableIndex(v int) (MapEventVariableIndex, error) {
	return newInt[mapEventVariableIndex](v)
}

func NewCommonEventVariableIndex(v int) (CommonEventVariableIndex, error) {
	return newInt[commonEventVariableIndex](v)
}

// NewCommonEventReturnVariableIndex accepts -1, meaning "no return value".
func NewCommonEventReturnVariableIndex(v int) (CommonEventReturnVariableIndex, error) {
	return newInt[commonEventReturnVariableIndex](v)
}

func NewCommonEventArgCount(v int) (CommonEventArgCount, error) {
	return newInt[commonEventArgCount](v)
}

func NewNumberArgIndex(v int) (NumberArgIndex, error) { return newInt[numberArgIndex](v) }

func NewStringArgIndex(v int) (StringArgIndex, error) { return newInt[stringArgIndex](v) }

// NewProxyPort accepts -1, meaning "no proxy".
func NewProxyPort(v int) (ProxyPort, error) { return newInt[proxyPort](v) }

func NewRandomVariableValue(v int) (RandomVariableValue, error) {
	return newInt[randomVariableValue](v)
}

func NewDBTypeID(v int) (DBTypeID, error) { return newInt[dbTypeID](v) }

func NewDBDataID(v int) (DBDataID, error) { return newInt[dbDataID](v) }

func NewDBItemID(v int) (DBItemID, error) { return newInt[dbItemID](v) }

func NewPictureNumber(v int) (PictureNumber, error) { return newInt[pictureNumber](v) }

func NewMoveFrames(v int) (MoveFrames, error) { return newInt[moveFrames](v) }

func NewLoopCount(v int) (LoopCount, error) { return newInt[loopCount](v) }

func NewIndent(v int) (Indent, error) { return newInt[indent](v) }

type (
	commonEventName        struct{}
	commonEventDescription struct{}
	commonEventMemo        struct{}
	argName                struct{}
	argCaseDescription     struct{}
	selfVariableName       struct{}
	dataName               struct{}
	returnValueDescription struct{}
	labelName              struct{}
	footerString           struct{}
	messageText            struct{}
)

func (commonEventName) rules() (string, bool, int)        { return "CommonEventName", false, 0 }
func (commonEventDescription) rules() (string, bool, int) { return "CommonEventDescription", false, 0 }
func (commonEventMemo) rules() (string, bool, int)        { return "CommonEventMemo", true, 0 }
func (argName) rules() (string, bool, int)                { return "ArgName", false, 0 }
func (argCaseDescription) rules() (string, bool, int)     { return "ArgCaseDescription", false, 0 }
func (selfVariableName) rules() (string, bool, int)       { return "SelfVariableName", false, 0 }
func (dataName) rules() (string, bool, int)               { return "DataName", false, 0 }
func (returnValueDescription) rules() (string, bool, int) { return "ReturnValueDescription", false, 0 }
func (labelName) rules() (string, bool, int)              { return "LabelName", false, 0 }
func (footerString) rules() (string, bool, int)           { return "FooterString", true, 0 }
func (messageText) rules() (string, bool, int)            { return "MessageText", true, 0 }

// String value object kinds.
type (
	CommonEventName        = Text[commonEventName]
	CommonEventDescription = Text[commonEventDescription]
	CommonEventMemo        = Text[commonEventMemo]
	ArgName                = Text[argName]
	ArgCaseDescription     = Text[argCaseDescription]
	SelfVariableName       = Text[selfVariableName]
	DataName               = Text[dataName]
	ReturnValueDescription = Text[returnValueDescription]
	LabelName              = Text[labelName]
	FooterString           = Text[footerString]
	MessageText            = Text[messageText]
)

func NewCommonEventName(s string) (CommonEventName, error) { return newText[commonEventName](s) }

func NewCommonEventDescription(s string) (CommonEventDescription, error) {
	return newText[commonEventDescription](s)
}

func NewCommonEventMemo(s string) (CommonEventMemo, error) { return newText[commonEventMemo](s) }

func NewArgName(s string) (ArgName, error) { return newText[argName](s) }

func NewArgCaseDescription(s string) (ArgCaseDescription, error) {
	return newText[argCaseDescription](s)
}

func NewSelfVariableName(s string) (SelfVariableName, error) { return newText[selfVariableName](s) }

func NewDataName(s string) (DataName, error) { return newText[dataName](s) }

func NewReturnValueDescription(s string) (ReturnValueDescription, error) {
	return newText[returnValueDescription](s)
}

func NewLabelName(s string) (LabelName, error) { return newText[labelName](s) }

func NewFooterString(s string) (FooterString, error) { return newText[footerString](s) }

func NewMessageText(s string) (MessageText, error) { return newText[messageText](s) }
